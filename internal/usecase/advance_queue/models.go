package advance_queue

// Result итог одного прохода по очереди
type Result struct {
	MovedToInProgress int
	MovedToReview     int
	Archived          int
}

// IsNoop возвращает true, если проход ничего не изменил
func (r Result) IsNoop() bool {
	return r.MovedToInProgress == 0 && r.MovedToReview == 0 && r.Archived == 0
}
