package recovery

type Stage string

const (
	StageSeed      Stage = "seed"
	StageSprout    Stage = "sprout"
	StageYoung     Stage = "young"
	StageGrowing   Stage = "growing"
	StageFlowering Stage = "flowering"
	StageTree      Stage = "tree"
)

// stageBounds lists the last day of each stage. Days past the final bound
// are a tree.
var stageBounds = []struct {
	maxDays int
	stage   Stage
}{
	{1, StageSeed},
	{6, StageSprout},
	{13, StageYoung},
	{29, StageGrowing},
	{89, StageFlowering},
}

func StageFor(days int) Stage {
	for _, b := range stageBounds {
		if days <= b.maxDays {
			return b.stage
		}
	}
	return StageTree
}

func (s Stage) Label() string {
	switch s {
	case StageSeed:
		return "Seed"
	case StageSprout:
		return "Sprout"
	case StageYoung:
		return "Young plant"
	case StageGrowing:
		return "Growing"
	case StageFlowering:
		return "Flowering"
	case StageTree:
		return "Tree"
	default:
		return string(s)
	}
}
