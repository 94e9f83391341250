package inspection

import "math"

// Categories is the fixed set of checklist groupings, in display order.
var Categories = []string{
	"engine",
	"transmission",
	"brakes",
	"suspension",
	"steering",
	"electrical",
	"interior",
	"exterior",
	"tyres",
}

// Results maps a category name to a mapping of item name to the condition
// value selected for that item. Partial completion is legal; items without
// an answer are simply absent.
type Results map[string]map[string]string

// unknownScore is used for any condition value not in the table. Garbage in
// degrades to a neutral score rather than an error.
const unknownScore = 5

// itemScores maps every known condition value to its score. The vocabulary is
// closed and case-sensitive; "Heavy" (steering feel) and "Heavy Rust"
// (undercarriage) are unrelated entries that happen to share a word.
var itemScores = map[string]float64{
	"Excellent": 10, "Good": 10, "Ok": 10, "Working": 10, "Clean": 10, "Normal": 10,
	"New": 10, "Perfect": 10, "Smooth": 10, "Centered": 10, "Responsive": 10, "Firm": 10,
	"All Working": 10, "Charging": 10, "Cold": 10, "Clear": 10, "Straight": 10,
	"Fair": 7, "Worn": 7, "Low": 7, "Weak": 7, "Minor": 7, "Sluggish": 7,
	"Hard": 6, "Loose": 6, "Scratched": 6, "Faded": 6, "Sagging": 6, "Dim": 6,
	"Heavy": 6, "Light": 6, "Soft": 6, "Scored": 6, "Stained": 6,
	"Poor": 4, "Dirty": 4, "Major": 4,
	"Needs Replacement": 3, "Cracked": 3, "Leaking": 3, "Corroded": 3, "Warped": 3, "Frayed": 3,
	"Heavy Rust": 2, "Damaged": 2, "Slipping": 2, "Grinding": 2, "Clunking": 2,
	"Not Working": 1, "Broken": 1, "Failed": 1, "Missing": 1, "Empty": 1,
	"Burnt": 1, "Contaminated": 1, "Dead": 1, "Bald": 1, "Overheating": 1,
}

// ScoreItem returns the score for a single condition value, or 5 when the
// value is not in the table.
func ScoreItem(value string) float64 {
	if score, ok := itemScores[value]; ok {
		return score
	}
	return unknownScore
}

// ScoreCategory returns the mean item score for one category, rounded to one
// decimal. An empty category scores 0.
func ScoreCategory(answers map[string]string) float64 {
	if len(answers) == 0 {
		return 0
	}
	var total float64
	for _, value := range answers {
		total += ScoreItem(value)
	}
	return round1(total / float64(len(answers)))
}

// ScoreOverall returns the mean score over every answered item across all
// categories, rounded to one decimal. This is a global average: a category
// with more answered items carries proportionally more weight. It is NOT the
// average of the per-category averages. Returns 0 when nothing is answered.
func ScoreOverall(results Results) float64 {
	var total float64
	var count int
	for _, category := range Categories {
		for _, value := range results[category] {
			total += ScoreItem(value)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round1(total / float64(count))
}

// ScoreAllCategories scores every fixed category independently. The returned
// map always contains all nine category keys; categories without answers
// score 0.
func ScoreAllCategories(results Results) map[string]float64 {
	ratings := make(map[string]float64, len(Categories))
	for _, category := range Categories {
		ratings[category] = ScoreCategory(results[category])
	}
	return ratings
}

// AnsweredItems counts the answered checklist items across all fixed
// categories.
func AnsweredItems(results Results) int {
	var count int
	for _, category := range Categories {
		count += len(results[category])
	}
	return count
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
