// Package flow drives the order capture conversation: a draft accumulates
// answers prompt by prompt until the user confirms or cancels. It knows
// nothing about Telegram; the transport feeds events in and renders the
// prompts out.
package flow

import (
	"errors"
	"strings"
	"time"

	"github.com/Daniyarzr/Flower-bot/internal/orders"
)

// DateLayout is the wanted-by date format users type, e.g. 08.03.2025.
const DateLayout = "02.01.2006"

type State int

const (
	StateIdle State = iota
	StateDate
	StateDelivery
	StateAddress
	StatePayment
	StateName
	StatePhone
	StateComment
	StateConfirm
)

type EventKind int

const (
	// EventText carries a free-form message.
	EventText EventKind = iota
	// EventChoice carries a menu selection payload.
	EventChoice
	// EventSkip skips the optional comment.
	EventSkip
	EventConfirm
	EventCancel
)

type Event struct {
	Kind  EventKind
	Value string
}

// Draft holds everything collected so far for one order.
type Draft struct {
	ProductID    int64
	NeedDate     time.Time
	Delivery     orders.DeliveryType
	Address      string
	Payment      orders.PaymentType
	CustomerName string
	Phone        string
	Comment      string
}

// Prompt names the next question for the transport to render.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptDate
	PromptDelivery
	PromptAddress
	PromptPayment
	PromptName
	PromptPhone
	PromptComment
	PromptConfirm
)

type Outcome int

const (
	OutcomeContinue Outcome = iota
	// OutcomeCommit: the user confirmed, the caller persists the draft.
	OutcomeCommit
	// OutcomeCanceled: the draft is discarded, nothing was written.
	OutcomeCanceled
)

// Result of feeding one event into the conversation. When Err is set the
// state did not advance and Prompt repeats the same question.
type Result struct {
	State   State
	Draft   Draft
	Prompt  Prompt
	Outcome Outcome
	Err     error
}

var (
	ErrBadDate   = errors.New("date must look like 31.12.2025")
	ErrBadChoice = errors.New("unknown selection")
	ErrEmpty     = errors.New("empty answer")
)

// Start opens a capture for one product. The first question is always the
// wanted-by date.
func Start(productID int64) Result {
	return Result{
		State:  StateDate,
		Draft:  Draft{ProductID: productID},
		Prompt: PromptDate,
	}
}

// Advance feeds one event into the conversation. Cancel works from any
// state. Pickup skips the address question; the comment is the only
// optional answer.
func Advance(st State, d Draft, ev Event) Result {
	if ev.Kind == EventCancel {
		return Result{State: StateIdle, Outcome: OutcomeCanceled}
	}

	switch st {
	case StateDate:
		t, err := time.Parse(DateLayout, strings.TrimSpace(ev.Value))
		if ev.Kind != EventText || err != nil {
			return retry(st, d, PromptDate, ErrBadDate)
		}
		d.NeedDate = t
		return Result{State: StateDelivery, Draft: d, Prompt: PromptDelivery}

	case StateDelivery:
		dt, ok := orders.ParseDelivery(ev.Value)
		if ev.Kind != EventChoice || !ok {
			return retry(st, d, PromptDelivery, ErrBadChoice)
		}
		d.Delivery = dt
		if dt == orders.DeliveryCourier {
			return Result{State: StateAddress, Draft: d, Prompt: PromptAddress}
		}
		d.Address = ""
		return Result{State: StatePayment, Draft: d, Prompt: PromptPayment}

	case StateAddress:
		addr := strings.TrimSpace(ev.Value)
		if ev.Kind != EventText || addr == "" {
			return retry(st, d, PromptAddress, ErrEmpty)
		}
		d.Address = addr
		return Result{State: StatePayment, Draft: d, Prompt: PromptPayment}

	case StatePayment:
		pt, ok := orders.ParsePayment(ev.Value)
		if ev.Kind != EventChoice || !ok {
			return retry(st, d, PromptPayment, ErrBadChoice)
		}
		d.Payment = pt
		return Result{State: StateName, Draft: d, Prompt: PromptName}

	case StateName:
		name := strings.TrimSpace(ev.Value)
		if ev.Kind != EventText || name == "" {
			return retry(st, d, PromptName, ErrEmpty)
		}
		d.CustomerName = name
		return Result{State: StatePhone, Draft: d, Prompt: PromptPhone}

	case StatePhone:
		phone := strings.TrimSpace(ev.Value)
		if ev.Kind != EventText || phone == "" {
			return retry(st, d, PromptPhone, ErrEmpty)
		}
		d.Phone = phone
		return Result{State: StateComment, Draft: d, Prompt: PromptComment}

	case StateComment:
		if ev.Kind == EventSkip {
			d.Comment = ""
			return Result{State: StateConfirm, Draft: d, Prompt: PromptConfirm}
		}
		comment := strings.TrimSpace(ev.Value)
		if ev.Kind != EventText || comment == "" {
			return retry(st, d, PromptComment, ErrEmpty)
		}
		d.Comment = comment
		return Result{State: StateConfirm, Draft: d, Prompt: PromptConfirm}

	case StateConfirm:
		if ev.Kind == EventConfirm {
			return Result{State: StateIdle, Draft: d, Outcome: OutcomeCommit}
		}
		return retry(st, d, PromptConfirm, ErrBadChoice)
	}

	// idle: nothing in progress, the event belongs to someone else's flow
	return Result{State: StateIdle}
}

func retry(st State, d Draft, p Prompt, err error) Result {
	return Result{State: st, Draft: d, Prompt: p, Err: err}
}
