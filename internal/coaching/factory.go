package coaching

import (
	"salescoach.app/engine/internal/lock"
	"salescoach.app/engine/internal/mail"
	"salescoach.app/engine/internal/retriever/knowledge"
	"salescoach.app/engine/internal/scorer"
	"salescoach.app/engine/internal/store"
	"salescoach.app/engine/internal/token"
)

// Services wires the coaching services over shared stores. Handlers depend on
// the accessors, never on the concrete service types.
type Services struct {
	analysis  AnalysisService
	lifecycle LifecycleService
}

type Deps struct {
	Stores       *store.Stores
	Scorer       *scorer.Scorer
	Retriever    *knowledge.Retriever // nil disables augmentation
	Guard        lock.AnalysisGuard   // nil disables analysis locking
	Tx           TxRunner
	Sender       mail.Sender
	ReplyBaseURL string
}

func NewServices(d Deps) *Services {
	tokens := token.NewService(d.Stores.CoachingMessages())
	return &Services{
		analysis: NewAnalysisService(
			d.Stores.Conversations(),
			d.Scorer,
			d.Retriever,
			d.Guard,
			d.Tx,
		),
		lifecycle: NewLifecycleService(
			d.Stores.CoachingMessages(),
			tokens,
			d.Sender,
			d.ReplyBaseURL,
		),
	}
}

func (s *Services) Analysis() AnalysisService {
	return s.analysis
}

func (s *Services) Lifecycle() LifecycleService {
	return s.lifecycle
}
