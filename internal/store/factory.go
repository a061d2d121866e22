package store

import (
	"salescoach.app/engine/core/db"
)

type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Conversations() ConversationStore {
	return newConversationStore(s.q)
}

func (s *Stores) CoachingMessages() CoachingMessageStore {
	return newCoachingMessageStore(s.q)
}
