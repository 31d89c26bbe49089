package flow

import (
	"errors"
	"testing"
	"time"

	"github.com/Daniyarzr/Flower-bot/internal/orders"
)

func text(s string) Event   { return Event{Kind: EventText, Value: s} }
func choice(s string) Event { return Event{Kind: EventChoice, Value: s} }

func TestStart(t *testing.T) {
	res := Start(7)
	if res.State != StateDate || res.Prompt != PromptDate {
		t.Fatalf("Start = state %d prompt %d, want date question first", res.State, res.Prompt)
	}
	if res.Draft.ProductID != 7 {
		t.Fatalf("ProductID = %d, want 7", res.Draft.ProductID)
	}
}

func TestDateValidation(t *testing.T) {
	d := Draft{ProductID: 1}
	for _, bad := range []string{"tomorrow", "2025-03-08", "8.3.25", "32.01.2025", ""} {
		res := Advance(StateDate, d, text(bad))
		if !errors.Is(res.Err, ErrBadDate) {
			t.Errorf("date %q: err = %v, want ErrBadDate", bad, res.Err)
		}
		if res.State != StateDate || res.Prompt != PromptDate {
			t.Errorf("date %q must re-ask the same question", bad)
		}
	}

	res := Advance(StateDate, d, text(" 08.03.2025 "))
	if res.Err != nil {
		t.Fatalf("valid date rejected: %v", res.Err)
	}
	want := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	if !res.Draft.NeedDate.Equal(want) {
		t.Fatalf("NeedDate = %v, want %v", res.Draft.NeedDate, want)
	}
	if res.State != StateDelivery {
		t.Fatalf("state = %d, want delivery question next", res.State)
	}
}

func TestPickupSkipsAddress(t *testing.T) {
	d := Draft{ProductID: 1, NeedDate: time.Now()}
	res := Advance(StateDelivery, d, choice("pickup"))
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.State != StatePayment || res.Prompt != PromptPayment {
		t.Fatalf("pickup must go straight to payment, got state %d", res.State)
	}
	if res.Draft.Address != "" {
		t.Fatalf("pickup draft carries address %q", res.Draft.Address)
	}
}

func TestCourierAsksAddressBeforePayment(t *testing.T) {
	d := Draft{ProductID: 1, NeedDate: time.Now()}
	res := Advance(StateDelivery, d, choice("courier"))
	if res.State != StateAddress || res.Prompt != PromptAddress {
		t.Fatalf("courier must ask for the address next, got state %d prompt %d", res.State, res.Prompt)
	}

	res = Advance(res.State, res.Draft, text("   "))
	if !errors.Is(res.Err, ErrEmpty) {
		t.Fatalf("blank address: err = %v, want ErrEmpty", res.Err)
	}
	if res.State != StateAddress {
		t.Fatal("blank address must not advance")
	}

	res = Advance(res.State, res.Draft, text("ул. Ленина, 5"))
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Draft.Address != "ул. Ленина, 5" {
		t.Fatalf("Address = %q", res.Draft.Address)
	}
	if res.State != StatePayment {
		t.Fatalf("payment must come only after the address, got state %d", res.State)
	}
}

func TestDeliveryRejectsUnknownChoice(t *testing.T) {
	res := Advance(StateDelivery, Draft{}, choice("drone"))
	if !errors.Is(res.Err, ErrBadChoice) {
		t.Fatalf("err = %v, want ErrBadChoice", res.Err)
	}
	res = Advance(StateDelivery, Draft{}, text("pickup"))
	if !errors.Is(res.Err, ErrBadChoice) {
		t.Fatal("free text must not pass for a menu selection")
	}
}

func TestCommentOptional(t *testing.T) {
	d := Draft{ProductID: 1}

	res := Advance(StateComment, d, Event{Kind: EventSkip})
	if res.Err != nil || res.State != StateConfirm {
		t.Fatalf("skip: err %v state %d, want confirm", res.Err, res.State)
	}
	if res.Draft.Comment != "" {
		t.Fatalf("skipped comment = %q", res.Draft.Comment)
	}

	res = Advance(StateComment, d, text("побольше зелени"))
	if res.Err != nil || res.State != StateConfirm {
		t.Fatalf("comment: err %v state %d", res.Err, res.State)
	}
	if res.Draft.Comment != "побольше зелени" {
		t.Fatalf("Comment = %q", res.Draft.Comment)
	}
}

func TestCancelFromAnyState(t *testing.T) {
	states := []State{StateDate, StateDelivery, StateAddress, StatePayment, StateName, StatePhone, StateComment, StateConfirm}
	d := Draft{ProductID: 1, CustomerName: "Анна", Phone: "+70000000000"}
	for _, st := range states {
		res := Advance(st, d, Event{Kind: EventCancel})
		if res.Outcome != OutcomeCanceled {
			t.Errorf("cancel at state %d: outcome = %d", st, res.Outcome)
		}
		if res.State != StateIdle {
			t.Errorf("cancel at state %d must return to idle", st)
		}
	}
}

func TestConfirm(t *testing.T) {
	d := Draft{ProductID: 1, CustomerName: "Анна"}

	res := Advance(StateConfirm, d, Event{Kind: EventConfirm})
	if res.Outcome != OutcomeCommit {
		t.Fatalf("outcome = %d, want commit", res.Outcome)
	}
	if res.Draft.CustomerName != "Анна" {
		t.Fatal("commit must hand back the finished draft")
	}

	// anything that is not confirm or cancel re-shows the summary
	res = Advance(StateConfirm, d, text("да"))
	if !errors.Is(res.Err, ErrBadChoice) || res.Prompt != PromptConfirm {
		t.Fatalf("stray text at confirm: err %v prompt %d", res.Err, res.Prompt)
	}
	if res.State != StateConfirm {
		t.Fatal("stray text must not leave the confirm step")
	}
}

func TestIdleIgnoresEvents(t *testing.T) {
	res := Advance(StateIdle, Draft{}, text("привет"))
	if res.State != StateIdle || res.Prompt != PromptNone || res.Err != nil {
		t.Fatalf("idle must stay idle: %+v", res)
	}
}

func TestFullCourierFlow(t *testing.T) {
	res := Start(12)
	steps := []struct {
		ev         Event
		wantState  State
		wantPrompt Prompt
	}{
		{text("08.03.2025"), StateDelivery, PromptDelivery},
		{choice("courier"), StateAddress, PromptAddress},
		{text("ул. Ленина, 5"), StatePayment, PromptPayment},
		{choice("card"), StateName, PromptName},
		{text("Анна"), StatePhone, PromptPhone},
		{text("+70000000000"), StateComment, PromptComment},
		{Event{Kind: EventSkip}, StateConfirm, PromptConfirm},
	}
	for i, s := range steps {
		res = Advance(res.State, res.Draft, s.ev)
		if res.Err != nil {
			t.Fatalf("step %d: %v", i, res.Err)
		}
		if res.State != s.wantState || res.Prompt != s.wantPrompt {
			t.Fatalf("step %d: state %d prompt %d, want %d %d", i, res.State, res.Prompt, s.wantState, s.wantPrompt)
		}
	}

	res = Advance(res.State, res.Draft, Event{Kind: EventConfirm})
	if res.Outcome != OutcomeCommit {
		t.Fatalf("outcome = %d, want commit", res.Outcome)
	}
	d := res.Draft
	if d.ProductID != 12 ||
		d.Delivery != orders.DeliveryCourier ||
		d.Address != "ул. Ленина, 5" ||
		d.Payment != orders.PaymentCard ||
		d.CustomerName != "Анна" ||
		d.Phone != "+70000000000" ||
		d.Comment != "" {
		t.Fatalf("committed draft wrong: %+v", d)
	}
	if !d.NeedDate.Equal(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("NeedDate = %v", d.NeedDate)
	}
}
