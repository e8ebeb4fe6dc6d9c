package models

import "time"

// Candidate представляет кандидата, за которого можно проголосовать.
type Candidate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Party     string `json:"party"`
	VoteCount int    `json:"vote_count"` // Всегда равен числу записей в candidate_votes
}

// VoteRecord — запись об отданном голосе, только добавляется, никогда не меняется.
type VoteRecord struct {
	CandidateID int       `json:"candidate_id"`
	VoterUID    string    `json:"voter_uid"`
	VotedAt     time.Time `json:"voted_at"`
}

// DummyCandidate — входные данные создания и обновления кандидата.
type DummyCandidate struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Party string `json:"party" validate:"required,min=2,max=100"`
}

// TallyEntry — строка итогов голосования: партия и число голосов.
type TallyEntry struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}

// CandidateListItem — проекция кандидата для публичного списка.
type CandidateListItem struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}
