package chathub

import "chatrelay/backend/internal/models"

// Broadcaster fans out the online-user snapshot to every connected user
// whenever registry membership changes.
type Broadcaster struct {
	Registry *Registry
}

func NewBroadcaster(reg *Registry) *Broadcaster {
	return &Broadcaster{Registry: reg}
}

// BroadcastOnline computes a fresh presence snapshot and sends it to all
// currently-online users. A user whose handle fails the write is pruned
// by the registry, and the broadcast restarts so the survivors end up
// with a snapshot that no longer lists the pruned user. Each round either
// finishes cleanly or shrinks the registry, so the sweep terminates.
func (b *Broadcaster) BroadcastOnline() {
	for {
		users := b.Registry.ListOnline()
		frame := models.OnlineUsersFrame{
			Type:  models.FrameOnlineUsers,
			Users: users,
			Count: len(users),
		}

		clean := true
		for _, userID := range users {
			if !b.Registry.SendTo(userID, frame) {
				clean = false
			}
		}
		if clean {
			return
		}
	}
}
