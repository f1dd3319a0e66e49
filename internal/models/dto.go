package models

// ===== STATISTICS DTOs =====

// QuestionStats summarizes the attempts recorded against one question
type QuestionStats struct {
	TotalAttempts int     `json:"total_attempts"`
	Solved        int     `json:"solved"`
	Unsolved      int     `json:"unsolved"`
	Partial       int     `json:"partial"`
	AvgTime       float64 `json:"avg_time"`
}

// TopicStats is one per-topic bucket of the global breakdown
type TopicStats struct {
	Topic     string  `json:"topic"`
	Total     int     `json:"total"`
	Solved    int     `json:"solved"`
	SolveRate int     `json:"solve_rate"` // percent, 0-100
	AvgTime   float64 `json:"avg_time"`
}

// GlobalStats summarizes the whole practice log
type GlobalStats struct {
	TotalSessions int          `json:"total_sessions"`
	Solved        int          `json:"solved"`
	Unsolved      int          `json:"unsolved"`
	Partial       int          `json:"partial"`
	AvgTime       float64      `json:"avg_time"`
	ByTopic       []TopicStats `json:"by_topic"`
}

// QuestionHistory is a question together with every attempt against it
type QuestionHistory struct {
	Question *Question     `json:"question"`
	Sessions []*Attempt    `json:"sessions"`
	Stats    QuestionStats `json:"stats"`
}
