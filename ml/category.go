package ml

// Category is a fixed competency label used to bucket questions and select
// the rating dataset column for answers.
type Category string

// CategoryOutOfScope is the sentinel for questions the classifier cannot
// confidently bucket. Answers to such questions are sentiment-scored instead
// of label-predicted.
const CategoryOutOfScope Category = "Out of Scope"

const (
	CategoryEaseOfWorkingTogether Category = "Ease_of_Working_Together"
	CategoryCooperation           Category = "Cooperation"
	CategoryWorkEthics            Category = "Work_Ethics"
	CategoryAreasToImprove        Category = "Areas_to_Improve"
	CategoryHelpsOthers           Category = "Helps_Others"
	CategoryPunctuality           Category = "Punctuality"
	CategoryWorkEfficiency        Category = "Work_Efficiency"
	CategoryProblemSolving        Category = "Problem_Solving"
	CategoryAdaptability          Category = "Adaptability"
	CategoryCommunication         Category = "Communication"
	CategoryInnovation            Category = "Innovation"
	CategoryLeadership            Category = "Leadership"
	CategorySelfMotivation        Category = "Self_Motivation"
	CategoryEmotionalIntelligence Category = "Emotional_Intelligence"
)

const (
	// QuestionSetSeed fixes the train/test split of the question
	// classification dataset. Must not change: the trained model is only
	// reproducible with the original split.
	QuestionSetSeed int64 = 31929

	// DefaultSplitSeed is used for categories without a dedicated seed.
	DefaultSplitSeed int64 = 42
)

// splitSeeds carries the per-category train/test split seeds. These values
// are part of the trained-model contract and must be preserved bit-for-bit.
var splitSeeds = map[Category]int64{
	CategoryEaseOfWorkingTogether: 7374,
	CategoryCooperation:           48482,
	CategoryWorkEthics:            15053,
	CategoryAreasToImprove:        28509,
	CategoryHelpsOthers:           563,
	CategoryPunctuality:           6758,
	CategoryWorkEfficiency:        33691,
	CategoryProblemSolving:        1475,
	CategoryAdaptability:          4633,
	CategoryCommunication:         10425,
	CategoryInnovation:            5086,
	CategoryLeadership:            1237,
	CategorySelfMotivation:        1643,
	CategoryEmotionalIntelligence: 18730,
}

// SplitSeed returns the category's train/test split seed, or the default for
// categories without a dedicated one.
func (c Category) SplitSeed() int64 {
	if seed, ok := splitSeeds[c]; ok {
		return seed
	}
	return DefaultSplitSeed
}

// IsOutOfScope reports whether the category is the out-of-scope sentinel.
func (c Category) IsOutOfScope() bool {
	return c == CategoryOutOfScope
}

// KnownCategories returns the trained competency categories, excluding the
// out-of-scope sentinel.
func KnownCategories() []Category {
	return []Category{
		CategoryEaseOfWorkingTogether,
		CategoryCooperation,
		CategoryWorkEthics,
		CategoryAreasToImprove,
		CategoryHelpsOthers,
		CategoryPunctuality,
		CategoryWorkEfficiency,
		CategoryProblemSolving,
		CategoryAdaptability,
		CategoryCommunication,
		CategoryInnovation,
		CategoryLeadership,
		CategorySelfMotivation,
		CategoryEmotionalIntelligence,
	}
}
