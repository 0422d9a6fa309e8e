package usecase_sound_entity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ============== 测试替身 ==============

type fakeLibraryRepo struct {
	sounds  map[string]*sound_models.SoundGeneration
	saveErr error
}

func newFakeLibraryRepo() *fakeLibraryRepo {
	return &fakeLibraryRepo{sounds: make(map[string]*sound_models.SoundGeneration)}
}

func (f *fakeLibraryRepo) GetByID(ctx context.Context, soundId string) (*sound_models.SoundGeneration, error) {
	sound, ok := f.sounds[soundId]
	if !ok {
		return nil, domain.ErrSoundNotFound
	}
	copied := *sound
	return &copied, nil
}

func (f *fakeLibraryRepo) Save(ctx context.Context, sound *sound_models.SoundGeneration) (*sound_models.SoundGeneration, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if sound.ID.IsZero() {
		sound.ID = primitive.NewObjectID()
	}
	copied := *sound
	f.sounds[sound.ID.Hex()] = &copied
	return sound, nil
}

func (f *fakeLibraryRepo) UpdateMetadata(ctx context.Context, soundId, name, groupName string) (bool, error) {
	return false, nil
}

func (f *fakeLibraryRepo) GetSoundItems(
	ctx context.Context,
	start, end string,
	sortOrder []domain.SortOrder,
	search, groupName, soundType, status string,
) ([]sound_models.SoundGeneration, error) {
	return nil, nil
}

type fakeLineageRepo struct {
	lineages map[string]*sound_models.Lineage
	nodes    map[string]*sound_models.LineageNode // sound hex -> node
	order    []string
}

func newFakeLineageRepo() *fakeLineageRepo {
	return &fakeLineageRepo{
		lineages: make(map[string]*sound_models.Lineage),
		nodes:    make(map[string]*sound_models.LineageNode),
	}
}

func (f *fakeLineageRepo) CreateLineage(ctx context.Context, rootSound *sound_models.SoundGeneration) (*sound_models.Lineage, error) {
	for _, lineage := range f.lineages {
		if lineage.RootSoundID == rootSound.ID {
			return nil, domain.ErrLineageExists
		}
	}
	lineage := &sound_models.Lineage{
		ID:          primitive.NewObjectID(),
		RootSoundID: rootSound.ID,
		CreatedAt:   time.Now().UTC(),
	}
	f.lineages[lineage.ID.Hex()] = lineage

	rootNode := &sound_models.LineageNode{
		SoundID:       rootSound.ID,
		LineageID:     lineage.ID,
		Generation:    0,
		VariationType: sound_models.VariationRoot,
	}
	if err := f.SaveNode(ctx, rootNode); err != nil {
		return nil, err
	}

	return lineage, nil
}

func (f *fakeLineageRepo) SaveNode(ctx context.Context, node *sound_models.LineageNode) error {
	key := node.SoundID.Hex()
	if _, exists := f.nodes[key]; !exists {
		f.order = append(f.order, key)
	}
	copied := *node
	f.nodes[key] = &copied
	return nil
}

func (f *fakeLineageRepo) GetLineageByRootSound(ctx context.Context, soundId string) (*sound_models.Lineage, error) {
	for _, lineage := range f.lineages {
		if lineage.RootSoundID.Hex() == soundId {
			return lineage, nil
		}
	}
	return nil, domain.ErrLineageNotFound
}

func (f *fakeLineageRepo) GetLineageByID(ctx context.Context, lineageId string) (*sound_models.Lineage, error) {
	lineage, ok := f.lineages[lineageId]
	if !ok {
		return nil, domain.ErrLineageNotFound
	}
	return lineage, nil
}

func (f *fakeLineageRepo) GetNodeForSound(ctx context.Context, soundId string) (*sound_models.LineageNode, error) {
	node, ok := f.nodes[soundId]
	if !ok {
		return nil, domain.ErrLineageNodeMissing
	}
	copied := *node
	return &copied, nil
}

func (f *fakeLineageRepo) GetNodesForLineage(ctx context.Context, lineageId string) ([]sound_models.LineageNode, error) {
	nodes := make([]sound_models.LineageNode, 0)
	for _, key := range f.order {
		node := f.nodes[key]
		if node.LineageID.Hex() == lineageId {
			nodes = append(nodes, *node)
		}
	}
	return nodes, nil
}

func (f *fakeLineageRepo) GetAllLineages(ctx context.Context) ([]sound_models.Lineage, error) {
	lineages := make([]sound_models.Lineage, 0, len(f.lineages))
	for _, lineage := range f.lineages {
		lineages = append(lineages, *lineage)
	}
	return lineages, nil
}

func (f *fakeLineageRepo) CountNodesForLineage(ctx context.Context, lineageId string) (int64, error) {
	var count int64
	for _, node := range f.nodes {
		if node.LineageID.Hex() == lineageId {
			count++
		}
	}
	return count, nil
}

type fakeSynthesisRepo struct {
	calls       int
	failIndexes map[int]bool // 第N次调用（从0计）返回失败
	failAll     bool
}

func (f *fakeSynthesisRepo) Generate(ctx context.Context, engineId, prompt string, params sound_models.SoundParameters) (*sound_models.SynthesisResult, error) {
	index := f.calls
	f.calls++
	if f.failAll || f.failIndexes[index] {
		return nil, errors.New("synthesis backend unavailable")
	}
	return &sound_models.SynthesisResult{
		AudioURL:     "https://audio.test/" + primitive.NewObjectID().Hex() + ".wav",
		ProvenanceID: "prov-" + primitive.NewObjectID().Hex(),
	}, nil
}

type fakeEngineSelect struct {
	engineID string
}

func (f *fakeEngineSelect) Recommend(ctx context.Context, prompt string, durationSeconds float64, hasReferenceAudio bool) (*sound_interface.EngineRecommendation, error) {
	return &sound_interface.EngineRecommendation{EngineID: f.engineID, Rule: "default"}, nil
}

// ============== 构造辅助 ==============

type derivationFixture struct {
	library   *fakeLibraryRepo
	lineage   *fakeLineageRepo
	synthesis *fakeSynthesisRepo
	usecase   sound_interface.DerivationUsecase
}

func newDerivationFixture() *derivationFixture {
	library := newFakeLibraryRepo()
	lineage := newFakeLineageRepo()
	synthesis := &fakeSynthesisRepo{failIndexes: make(map[int]bool)}
	uc := NewDerivationUsecase(library, lineage, synthesis, &fakeEngineSelect{engineID: "musicgen_medium"}, 5*time.Second)
	return &derivationFixture{
		library:   library,
		lineage:   lineage,
		synthesis: synthesis,
		usecase:   uc,
	}
}

func (fx *derivationFixture) seedSound(sound *sound_models.SoundGeneration) *sound_models.SoundGeneration {
	if sound.ID.IsZero() {
		sound.ID = primitive.NewObjectID()
	}
	fx.library.sounds[sound.ID.Hex()] = sound
	return sound
}

func shiftRequest(parentID string, count int) *sound_models.DerivationRequest {
	return &sound_models.DerivationRequest{
		ParentSoundID: parentID,
		VariationType: sound_models.VariationParameterShift,
		Count:         count,
		ParameterShifts: &sound_models.ParameterShifts{
			Intensity: 10,
		},
	}
}

// ============== 测试 ==============

func TestDeriveVariationsCreatesLineageLazily(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())

	result, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 3))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Produced)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 1, result.Generation)
	assert.Len(t, result.Sounds, 3)

	// 谱系被惰性创建，根节点 generation=0
	rootNode, err := fx.lineage.GetNodeForSound(context.Background(), parent.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, rootNode.Generation)
	assert.True(t, rootNode.IsRoot())
	assert.Equal(t, sound_models.VariationRoot, rootNode.VariationType)
	assert.Equal(t, result.LineageID, rootNode.LineageID.Hex())

	// 兄弟变体共享代数并指向同一父节点
	for _, sound := range result.Sounds {
		node, err := fx.lineage.GetNodeForSound(context.Background(), sound.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, 1, node.Generation)
		assert.Equal(t, parent.ID, node.ParentID)
		assert.Equal(t, sound_models.VariationParameterShift, node.VariationType)
	}
}

func TestDeriveVariationsReusesExistingLineage(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())

	first, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 1))
	require.NoError(t, err)

	// 从第一代变体继续派生：代数为父代数+1，谱系沿用
	child := first.Sounds[0]
	second, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(child.ID.Hex(), 2))
	require.NoError(t, err)

	assert.Equal(t, first.LineageID, second.LineageID)
	assert.Equal(t, 2, second.Generation)

	// 对父声音再次派生不会重建谱系，新兄弟仍是第一代
	third, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 1))
	require.NoError(t, err)
	assert.Equal(t, first.LineageID, third.LineageID)
	assert.Equal(t, 1, third.Generation)
}

func TestDeriveVariationsPartialFailureIsolated(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())
	fx.synthesis.failIndexes[1] = true
	fx.synthesis.failIndexes[3] = true

	result, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 5))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 3, result.Produced)
	assert.Len(t, result.Sounds, 3)
}

func TestDeriveVariationsAllFailedRaisesBatchExhausted(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())
	fx.synthesis.failAll = true

	_, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 4))
	require.Error(t, err)

	var exhausted *domain.BatchExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, exhausted.Requested)
	assert.Equal(t, 4, exhausted.Failed)
}

func TestDeriveVariationsValidation(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())

	cases := []struct {
		name string
		req  *sound_models.DerivationRequest
	}{
		{"count too low", &sound_models.DerivationRequest{
			ParentSoundID: parent.ID.Hex(),
			VariationType: sound_models.VariationMutate,
			Count:         0,
			MutationRate:  0.3,
		}},
		{"count too high", &sound_models.DerivationRequest{
			ParentSoundID: parent.ID.Hex(),
			VariationType: sound_models.VariationMutate,
			Count:         11,
			MutationRate:  0.3,
		}},
		{"unknown type", &sound_models.DerivationRequest{
			ParentSoundID: parent.ID.Hex(),
			VariationType: "remix",
			Count:         1,
		}},
		{"root not requestable", &sound_models.DerivationRequest{
			ParentSoundID: parent.ID.Hex(),
			VariationType: sound_models.VariationRoot,
			Count:         1,
		}},
		{"missing parameter shifts", &sound_models.DerivationRequest{
			ParentSoundID: parent.ID.Hex(),
			VariationType: sound_models.VariationParameterShift,
			Count:         1,
		}},
		{"evolution strength out of range", &sound_models.DerivationRequest{
			ParentSoundID:     parent.ID.Hex(),
			VariationType:     sound_models.VariationEvolve,
			Count:             1,
			EvolutionStrength: 0.9,
		}},
		{"mutation rate out of range", &sound_models.DerivationRequest{
			ParentSoundID: parent.ID.Hex(),
			VariationType: sound_models.VariationMutate,
			Count:         1,
			MutationRate:  0.05,
		}},
		{"combine without second source", &sound_models.DerivationRequest{
			ParentSoundID: parent.ID.Hex(),
			VariationType: sound_models.VariationCombine,
			Count:         1,
		}},
		{"style transfer without style text", &sound_models.DerivationRequest{
			ParentSoundID: parent.ID.Hex(),
			VariationType: sound_models.VariationStyleTransfer,
			Count:         1,
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := fx.usecase.DeriveVariations(context.Background(), c.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// 校验失败不得产生任何副作用
	assert.Empty(t, fx.lineage.lineages)
	assert.Equal(t, 0, fx.synthesis.calls)
}

func TestDeriveVariationsUnknownParent(t *testing.T) {
	fx := newDerivationFixture()

	_, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(primitive.NewObjectID().Hex(), 1))
	assert.ErrorIs(t, err, domain.ErrSoundNotFound)
}

func TestDeriveVariationsCombineRecordsWeakReference(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())
	other := fx.seedSound(testCombineWith())

	result, err := fx.usecase.DeriveVariations(context.Background(), &sound_models.DerivationRequest{
		ParentSoundID: parent.ID.Hex(),
		VariationType: sound_models.VariationCombine,
		Count:         1,
		CombineWithID: other.ID.Hex(),
	})
	require.NoError(t, err)
	require.Len(t, result.Sounds, 1)

	// 第二来源只作为弱引用记录，不构成第二条图边
	node, err := fx.lineage.GetNodeForSound(context.Background(), result.Sounds[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, parent.ID, node.ParentID)
	assert.Equal(t, other.ID, node.CombinedWithID)
}

func TestAncestorsWalksToRoot(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())

	first, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 1))
	require.NoError(t, err)
	child := first.Sounds[0]

	second, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(child.ID.Hex(), 1))
	require.NoError(t, err)
	grandchild := second.Sounds[0]

	// 由近及远：先父，后根
	ancestors, err := fx.usecase.Ancestors(context.Background(), grandchild.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{child.ID.Hex(), parent.ID.Hex()}, ancestors)

	// 根节点无祖先
	rootAncestors, err := fx.usecase.Ancestors(context.Background(), parent.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, rootAncestors)
}

func TestDescendantsBreadthFirst(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())

	first, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 2))
	require.NoError(t, err)

	second, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(first.Sounds[0].ID.Hex(), 1))
	require.NoError(t, err)

	descendants, err := fx.usecase.Descendants(context.Background(), parent.ID.Hex())
	require.NoError(t, err)

	expected := []string{
		first.Sounds[0].ID.Hex(),
		first.Sounds[1].ID.Hex(),
		second.Sounds[0].ID.Hex(),
	}
	assert.ElementsMatch(t, expected, descendants)

	// 广度优先：两个第一代兄弟先于第二代出现
	assert.Equal(t, second.Sounds[0].ID.Hex(), descendants[2])

	// 叶子无后代
	leafDescendants, err := fx.usecase.Descendants(context.Background(), first.Sounds[1].ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, leafDescendants)
}

func TestAncestorsCorruptedGraphFailsLoudly(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())

	first, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 1))
	require.NoError(t, err)
	child := first.Sounds[0]

	// 人为制造环：把根节点的父指针指向其子节点
	rootNode := fx.lineage.nodes[parent.ID.Hex()]
	rootNode.ParentID = child.ID

	_, err = fx.usecase.Ancestors(context.Background(), child.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrStoreInconsistency)
}

func TestGetLineageInfo(t *testing.T) {
	fx := newDerivationFixture()
	parent := fx.seedSound(testParent())

	first, err := fx.usecase.DeriveVariations(context.Background(), shiftRequest(parent.ID.Hex(), 1))
	require.NoError(t, err)
	child := first.Sounds[0]

	info, err := fx.usecase.GetLineageInfo(context.Background(), child.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, first.LineageID, info.Lineage.ID.Hex())
	assert.Equal(t, parent.ID, info.Lineage.RootSoundID)
	assert.Equal(t, child.ID, info.Node.SoundID)
	assert.Equal(t, []string{parent.ID.Hex()}, info.Ancestors)
	assert.Empty(t, info.Descendants)
}

func TestGetLineageInfoUnknownSound(t *testing.T) {
	fx := newDerivationFixture()

	_, err := fx.usecase.GetLineageInfo(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrLineageNodeMissing)
}
