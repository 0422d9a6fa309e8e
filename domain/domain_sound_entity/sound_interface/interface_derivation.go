package sound_interface

import (
	"context"

	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

// DerivationUsecase 派生编排：变体批处理与谱系查询的唯一入口
type DerivationUsecase interface {
	// DeriveVariations 为指定声音批量生成变体
	// 单条合成失败不终止整批；全部失败时返回 *domain.BatchExhaustedError
	DeriveVariations(ctx context.Context, req *sound_models.DerivationRequest) (*sound_models.DerivationResult, error)

	// Ancestors 沿 parent 指针上行至根，返回祖先声音ID（由近及远）
	// 回溯步数超过谱系节点总数时返回 domain.ErrStoreInconsistency
	Ancestors(ctx context.Context, soundId string) ([]string, error)

	// Descendants 广度优先收集所有后代声音ID
	Descendants(ctx context.Context, soundId string) ([]string, error)

	GetLineageInfo(ctx context.Context, soundId string) (*sound_models.LineageInfo, error)

	GetAllLineages(ctx context.Context) ([]sound_models.Lineage, error)
}
