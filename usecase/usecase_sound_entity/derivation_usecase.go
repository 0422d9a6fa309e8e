package usecase_sound_entity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	minVariationCount = 1
	maxVariationCount = 10
)

// derivationUsecase 派生编排：校验、谱系惰性创建、逐条合成与失败隔离
type derivationUsecase struct {
	libraryRepo   sound_interface.SoundLibraryRepository
	lineageRepo   sound_interface.LineageRepository
	synthesisRepo sound_interface.SynthesisRepository
	engineSelect  sound_interface.EngineSelectionUsecase
	timeout       time.Duration
}

func NewDerivationUsecase(
	libraryRepo sound_interface.SoundLibraryRepository,
	lineageRepo sound_interface.LineageRepository,
	synthesisRepo sound_interface.SynthesisRepository,
	engineSelect sound_interface.EngineSelectionUsecase,
	timeout time.Duration,
) sound_interface.DerivationUsecase {
	return &derivationUsecase{
		libraryRepo:   libraryRepo,
		lineageRepo:   lineageRepo,
		synthesisRepo: synthesisRepo,
		engineSelect:  engineSelect,
		timeout:       timeout,
	}
}

func (uc *derivationUsecase) DeriveVariations(
	ctx context.Context,
	req *sound_models.DerivationRequest,
) (*sound_models.DerivationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	// 参数校验：任何副作用之前整体拒绝
	validations := []func() error{
		func() error {
			if req.Count < minVariationCount || req.Count > maxVariationCount {
				return fmt.Errorf("%w: count must be between %d and %d",
					domain.ErrValidation, minVariationCount, maxVariationCount)
			}
			return nil
		},
		func() error {
			if !req.VariationType.Valid() {
				return fmt.Errorf("%w: unrecognized variation type %q", domain.ErrValidation, req.VariationType)
			}
			return nil
		},
		func() error {
			if _, err := primitive.ObjectIDFromHex(req.ParentSoundID); err != nil {
				return fmt.Errorf("%w: invalid parent_sound_id format", domain.ErrValidation)
			}
			return nil
		},
		func() error {
			if req.VariationType == sound_models.VariationParameterShift && req.ParameterShifts == nil {
				return fmt.Errorf("%w: parameter_shifts is required for parameter_shift", domain.ErrValidation)
			}
			return nil
		},
		func() error {
			if req.VariationType == sound_models.VariationEvolve &&
				(req.EvolutionStrength < 0.1 || req.EvolutionStrength > 0.5) {
				return fmt.Errorf("%w: evolution_strength must be between 0.1 and 0.5", domain.ErrValidation)
			}
			return nil
		},
		func() error {
			if req.VariationType == sound_models.VariationMutate &&
				(req.MutationRate < 0.1 || req.MutationRate > 0.7) {
				return fmt.Errorf("%w: mutation_rate must be between 0.1 and 0.7", domain.ErrValidation)
			}
			return nil
		},
		func() error {
			if req.VariationType == sound_models.VariationCombine {
				if _, err := primitive.ObjectIDFromHex(req.CombineWithID); err != nil {
					return fmt.Errorf("%w: combine_with_id is required for combine", domain.ErrValidation)
				}
			}
			return nil
		},
		func() error {
			if req.VariationType == sound_models.VariationStyleTransfer && req.StyleText == "" {
				return fmt.Errorf("%w: style_text is required for style_transfer", domain.ErrValidation)
			}
			return nil
		},
	}

	for _, validate := range validations {
		if err := validate(); err != nil {
			return nil, err
		}
	}

	parent, err := uc.libraryRepo.GetByID(ctx, req.ParentSoundID)
	if err != nil {
		return nil, err
	}

	// combine 的第二来源独立解析，缺失同样阻断整批
	var combineWith *sound_models.SoundGeneration
	if req.VariationType == sound_models.VariationCombine {
		combineWith, err = uc.libraryRepo.GetByID(ctx, req.CombineWithID)
		if err != nil {
			return nil, err
		}
	}

	lineageID, batchGeneration, err := uc.resolveLineage(ctx, parent)
	if err != nil {
		return nil, err
	}

	engineID := req.EngineID
	if engineID == "" {
		recommendation, err := uc.engineSelect.Recommend(ctx, parent.Prompt, parent.Parameters.LengthSeconds, false)
		if err != nil {
			return nil, err
		}
		engineID = recommendation.EngineID
	}

	strategy := newVariationStrategy(req, parent, combineWith)

	produced := make([]sound_models.SoundGeneration, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		out, err := strategy.Apply(i, req.Count)
		if err != nil {
			return nil, err
		}

		sound, err := uc.produceVariation(ctx, engineID, parent, combineWith, out, lineageID, batchGeneration, req.VariationType, i)
		if err != nil {
			// 单条失败只跳过，整批继续
			log.Printf("variation %d/%d of sound %s failed: %v", i+1, req.Count, req.ParentSoundID, err)
			continue
		}

		produced = append(produced, *sound)
	}

	if len(produced) == 0 {
		return nil, &domain.BatchExhaustedError{Requested: req.Count, Failed: req.Count}
	}

	return &sound_models.DerivationResult{
		Sounds:     produced,
		LineageID:  lineageID.Hex(),
		Generation: batchGeneration,
		Requested:  req.Count,
		Produced:   len(produced),
	}, nil
}

// resolveLineage 复用父节点所属谱系；父声音尚无谱系时以其为根惰性创建
// 返回本批兄弟变体共享的代数（父代数+1），在任何合成调用之前确定
func (uc *derivationUsecase) resolveLineage(
	ctx context.Context,
	parent *sound_models.SoundGeneration,
) (primitive.ObjectID, int, error) {
	node, err := uc.lineageRepo.GetNodeForSound(ctx, parent.ID.Hex())
	if err == nil {
		return node.LineageID, node.Generation + 1, nil
	}
	if !errors.Is(err, domain.ErrLineageNodeMissing) {
		return primitive.NilObjectID, 0, err
	}

	lineage, err := uc.lineageRepo.CreateLineage(ctx, parent)
	if err != nil {
		return primitive.NilObjectID, 0, err
	}

	return lineage.ID, 1, nil
}

func (uc *derivationUsecase) produceVariation(
	ctx context.Context,
	engineID string,
	parent, combineWith *sound_models.SoundGeneration,
	out *strategyOutput,
	lineageID primitive.ObjectID,
	generation int,
	variationType sound_models.VariationType,
	index int,
) (*sound_models.SoundGeneration, error) {
	prompt := parent.Prompt + ", " + out.PromptSuffix

	synth, err := uc.synthesisRepo.Generate(ctx, engineID, prompt, out.Params)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}

	sound := &sound_models.SoundGeneration{
		Prompt:       prompt,
		Parameters:   out.Params,
		AudioURL:     synth.AudioURL,
		Status:       sound_models.StatusReady,
		ProvenanceID: synth.ProvenanceID,
		EngineID:     engineID,
		VariantOfID:  parent.ID,
		Name:         fmt.Sprintf("%s variation %d", displayName(parent), index+1),
		GroupName:    parent.GroupName,
	}

	saved, err := uc.libraryRepo.Save(ctx, sound)
	if err != nil {
		return nil, fmt.Errorf("persist variation failed: %w", err)
	}

	node := &sound_models.LineageNode{
		SoundID:       saved.ID,
		LineageID:     lineageID,
		ParentID:      parent.ID,
		Generation:    generation,
		VariationType: variationType,
	}
	if combineWith != nil {
		node.CombinedWithID = combineWith.ID
	}

	if err := uc.lineageRepo.SaveNode(ctx, node); err != nil {
		return nil, fmt.Errorf("persist lineage node failed: %w", err)
	}

	return saved, nil
}

func (uc *derivationUsecase) Ancestors(ctx context.Context, soundId string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	node, err := uc.lineageRepo.GetNodeForSound(ctx, soundId)
	if err != nil {
		return nil, err
	}

	// 回溯步数以谱系节点总数为上界：超出必然意味着图被破坏
	bound, err := uc.lineageRepo.CountNodesForLineage(ctx, node.LineageID.Hex())
	if err != nil {
		return nil, err
	}

	ancestors := make([]string, 0)
	current := node
	for steps := int64(0); !current.IsRoot(); steps++ {
		if steps >= bound {
			return nil, fmt.Errorf("%w: ancestor walk from sound %s", domain.ErrStoreInconsistency, soundId)
		}

		parentNode, err := uc.lineageRepo.GetNodeForSound(ctx, current.ParentID.Hex())
		if err != nil {
			if errors.Is(err, domain.ErrLineageNodeMissing) {
				return nil, fmt.Errorf("%w: missing parent node %s", domain.ErrStoreInconsistency, current.ParentID.Hex())
			}
			return nil, err
		}

		ancestors = append(ancestors, current.ParentID.Hex())
		current = parentNode
	}

	return ancestors, nil
}

func (uc *derivationUsecase) Descendants(ctx context.Context, soundId string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	node, err := uc.lineageRepo.GetNodeForSound(ctx, soundId)
	if err != nil {
		return nil, err
	}

	nodes, err := uc.lineageRepo.GetNodesForLineage(ctx, node.LineageID.Hex())
	if err != nil {
		return nil, err
	}

	children := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		if n.IsRoot() {
			continue
		}
		parentKey := n.ParentID.Hex()
		children[parentKey] = append(children[parentKey], n.SoundID.Hex())
	}

	// 广度优先；visited 防御循环，步数超过节点总数即判定图损坏
	descendants := make([]string, 0)
	visited := map[string]bool{soundId: true}
	queue := []string{soundId}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, child := range children[current] {
			if visited[child] {
				return nil, fmt.Errorf("%w: cycle at node %s", domain.ErrStoreInconsistency, child)
			}
			visited[child] = true
			descendants = append(descendants, child)
			queue = append(queue, child)

			if len(descendants) > len(nodes) {
				return nil, fmt.Errorf("%w: descendant walk from sound %s", domain.ErrStoreInconsistency, soundId)
			}
		}
	}

	return descendants, nil
}

func (uc *derivationUsecase) GetLineageInfo(ctx context.Context, soundId string) (*sound_models.LineageInfo, error) {
	node, err := uc.lineageRepo.GetNodeForSound(ctx, soundId)
	if err != nil {
		return nil, err
	}

	lineage, err := uc.lineageRepo.GetLineageByID(ctx, node.LineageID.Hex())
	if err != nil {
		return nil, err
	}

	ancestors, err := uc.Ancestors(ctx, soundId)
	if err != nil {
		return nil, err
	}

	descendants, err := uc.Descendants(ctx, soundId)
	if err != nil {
		return nil, err
	}

	return &sound_models.LineageInfo{
		Lineage:     *lineage,
		Node:        *node,
		Ancestors:   ancestors,
		Descendants: descendants,
	}, nil
}

func (uc *derivationUsecase) GetAllLineages(ctx context.Context) ([]sound_models.Lineage, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.lineageRepo.GetAllLineages(ctx)
}
