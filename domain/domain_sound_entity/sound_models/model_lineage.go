package sound_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VariationType 派生变体的类型，封闭枚举
type VariationType string

const (
	VariationRoot           VariationType = "root"
	VariationParameterShift VariationType = "parameter_shift"
	VariationStyleTransfer  VariationType = "style_transfer"
	VariationCombine        VariationType = "combine"
	VariationEvolve         VariationType = "evolve"
	VariationMutate         VariationType = "mutate"
)

// Valid 判断是否为可请求的派生类型（root 仅由系统写入，不可请求）
func (v VariationType) Valid() bool {
	switch v {
	case VariationParameterShift, VariationStyleTransfer, VariationCombine, VariationEvolve, VariationMutate:
		return true
	}
	return false
}

// Lineage 一棵派生树，每个被派生过的原始声音恰好对应一棵
// 首次对某声音请求变体时惰性创建，之后只追加不修改
type Lineage struct {
	ID          primitive.ObjectID `bson:"_id"`           // 谱系唯一标识符
	RootSoundID primitive.ObjectID `bson:"root_sound_id"` // 树根声音的标识符
	CreatedAt   time.Time          `bson:"created_at"`    // 谱系创建时间
}

// LineageNode 谱系中的一个节点，按 sound_id 唯一
// 不变式（由编排层保证，存储层不校验）：
//   - 非根节点 generation = 父节点 generation + 1
//   - 严格树结构，至多一个父节点
//   - 非根节点 lineage_id 与父节点一致
type LineageNode struct {
	SoundID        primitive.ObjectID `bson:"sound_id"`                   // 所属声音标识符（节点主键）
	LineageID      primitive.ObjectID `bson:"lineage_id"`                 // 所属谱系
	ParentID       primitive.ObjectID `bson:"parent_id,omitempty"`        // 父节点声音标识符（根节点为空）
	Generation     int                `bson:"generation"`                 // 代数（根为 0，逐代加 1）
	VariationType  VariationType      `bson:"variation_type"`             // 产生该节点的派生类型
	CombinedWithID primitive.ObjectID `bson:"combined_with_id,omitempty"` // combine 的第二来源弱引用（仅供溯源展示，不构成图边）
	CreatedAt      time.Time          `bson:"created_at"`                 // 节点写入时间（即插入顺序）
}

// IsRoot 根节点无父指针
func (n *LineageNode) IsRoot() bool {
	return n.ParentID.IsZero()
}
