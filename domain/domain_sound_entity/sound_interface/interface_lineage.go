package sound_interface

import (
	"context"

	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

// LineageRepository 谱系图存储：只做持久化，不校验树不变式
// 不变式的维护责任在编排层（DerivationUsecase）
type LineageRepository interface {
	// CreateLineage 为根声音分配新谱系并写入隐式根节点（generation=0）
	// 幂等性由调用方负责：调用前应先查 GetLineageByRootSound
	CreateLineage(ctx context.Context, rootSound *sound_models.SoundGeneration) (*sound_models.Lineage, error)

	// SaveNode 以 sound_id 为键追加或覆盖节点（last write wins）
	SaveNode(ctx context.Context, node *sound_models.LineageNode) error

	GetLineageByRootSound(ctx context.Context, soundId string) (*sound_models.Lineage, error)

	GetLineageByID(ctx context.Context, lineageId string) (*sound_models.Lineage, error)

	GetNodeForSound(ctx context.Context, soundId string) (*sound_models.LineageNode, error)

	// GetNodesForLineage 按插入顺序返回，不保证按代数排序
	GetNodesForLineage(ctx context.Context, lineageId string) ([]sound_models.LineageNode, error)

	GetAllLineages(ctx context.Context) ([]sound_models.Lineage, error)

	// CountNodesForLineage 供祖先回溯的循环上界使用
	CountNodesForLineage(ctx context.Context, lineageId string) (int64, error)
}
