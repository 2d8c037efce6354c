package scheduler

// Rating is a 0-5 self-assessment of recall quality. The scale is a public
// contract with clients and must not be renumbered.
type Rating int

const (
	// RatingBlackout: total blackout, no recall at all.
	RatingBlackout Rating = 0
	// RatingIncorrectRecognized: incorrect, but recognized on seeing the answer.
	RatingIncorrectRecognized Rating = 1
	// RatingIncorrectFamiliar: incorrect, but the answer felt familiar.
	RatingIncorrectFamiliar Rating = 2
	// RatingCorrectDifficult: correct with serious difficulty.
	RatingCorrectDifficult Rating = 3
	// RatingCorrectHesitant: correct with hesitation.
	RatingCorrectHesitant Rating = 4
	// RatingPerfect: perfect recall.
	RatingPerfect Rating = 5
)

// Passed reports whether the rating counts as a successful recall.
func (r Rating) Passed() bool {
	return r >= passingRating
}

func (r Rating) String() string {
	switch r {
	case RatingBlackout:
		return "blackout"
	case RatingIncorrectRecognized:
		return "incorrect, recognized answer"
	case RatingIncorrectFamiliar:
		return "incorrect, felt familiar"
	case RatingCorrectDifficult:
		return "correct with difficulty"
	case RatingCorrectHesitant:
		return "correct with hesitation"
	case RatingPerfect:
		return "perfect recall"
	default:
		return "invalid"
	}
}
