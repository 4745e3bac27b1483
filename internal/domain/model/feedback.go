package model

import "fmt"

// Feedback is the customer rating left on a delivered order.
type Feedback string

const (
	FeedbackNone      Feedback = "NONE"
	FeedbackExcellent Feedback = "EXCELLENT"
	FeedbackGood      Feedback = "GOOD"
	FeedbackAverage   Feedback = "AVERAGE"
	FeedbackBad       Feedback = "BAD"
	FeedbackVeryBad   Feedback = "VERY_BAD"
)

// feedbackByRating maps the wire rating 1..6 onto Feedback values in
// declaration order, so rating 3 is Good.
var feedbackByRating = []Feedback{
	FeedbackNone,
	FeedbackExcellent,
	FeedbackGood,
	FeedbackAverage,
	FeedbackBad,
	FeedbackVeryBad,
}

// ParseFeedbackRating converts a numeric rating into Feedback.
func ParseFeedbackRating(rating int) (Feedback, error) {
	if rating < 1 || rating > len(feedbackByRating) {
		return "", fmt.Errorf("unknown feedback rating %d", rating)
	}
	return feedbackByRating[rating-1], nil
}
