// Package notify pushes short alerts to the operator chats. Delivery is
// best effort: one attempt per recipient, failures are logged and never
// bubble up to the caller.
package notify

import (
	"context"
	"log"
	"sync"
)

// Sender delivers one text message to one chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type Notifier struct {
	sender  Sender
	chatIDs []int64
}

func New(sender Sender, chatIDs []int64) *Notifier {
	return &Notifier{sender: sender, chatIDs: chatIDs}
}

// Notify fans the text out to every operator chat and waits for the
// attempts to finish. One unreachable operator does not stop the others.
func (n *Notifier) Notify(ctx context.Context, text string) {
	var wg sync.WaitGroup
	for _, id := range n.chatIDs {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := n.sender.Send(ctx, id, text); err != nil {
				log.Printf("notify %d: %v", id, err)
			}
		}(id)
	}
	wg.Wait()
}
