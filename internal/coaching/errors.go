package coaching

import "errors"

var (
	// ErrInvalidConversation is a validation failure: no usable call id.
	ErrInvalidConversation = errors.New("conversation id is required")

	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("coaching message not found")

	// ErrEditAfterSend guards the lifecycle: content is mutable only while
	// the message is still in the generated bucket.
	ErrEditAfterSend = errors.New("coaching message can no longer be edited")

	// ErrNotSendable rejects a send on a message that is already out the
	// door (or terminal).
	ErrNotSendable = errors.New("coaching message is not in a sendable state")

	// ErrDuplicateReply rejects a second reply submission; the first
	// response is never overwritten.
	ErrDuplicateReply = errors.New("a response has already been recorded for this message")

	ErrEmptyReply = errors.New("reply text is required")
)
