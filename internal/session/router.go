package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/nsalerno/voicebridge/internal/event"
)

// Config holds Router settings.
type Config struct {
	// PendingCallTTL bounds how long an unanswered call request may stay
	// pending before the caller is notified and the room is dropped.
	// Zero disables expiry: a pending room then persists until the callee
	// rejects or either party disconnects.
	PendingCallTTL time.Duration
}

// Stats is a read-only snapshot for the status endpoint.
type Stats struct {
	Clients int
	Rooms   int
}

// Router owns both registries and all message-type dispatch logic. A single
// mutex serializes every transition, including disconnects and pending-call
// expiry, so no handler ever observes the caller/callee symmetry half-updated.
type Router struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	conns  *ConnRegistry
	rooms  *RoomRegistry
	expiry map[string]*time.Timer
}

// NewRouter creates a Router with empty registries.
func NewRouter(cfg Config, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		cfg:    cfg,
		logger: logger,
		conns:  NewConnRegistry(),
		rooms:  NewRoomRegistry(),
		expiry: make(map[string]*time.Timer),
	}
}

// Dispatch routes one inbound event from the connection identified by connID.
// The sender is the transport handle for that connection and is used for
// direct replies even before the connection has registered.
func (r *Router) Dispatch(connID string, sender Sender, env event.Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch env.Type {
	case event.TypeRegister:
		r.handleRegister(connID, sender, env)
	case event.TypeTranslation:
		r.handleTranslation(connID, env)
	case event.TypeTyping:
		r.handleTyping(connID)
	case event.TypeCallRequest:
		r.handleCallRequest(connID, sender, env)
	case event.TypeCallAccept:
		r.handleCallAccept(connID, sender, env)
	case event.TypeCallReject:
		r.handleCallReject(connID)
	case event.TypeCallEnd:
		r.handleCallEnd(connID)
	default:
		r.logger.Warn("unknown message type", "type", env.Type, "conn_id", connID)
		r.sendError(sender, "Unknown message type: "+env.Type)
	}
}

// Disconnect runs the teardown for a transport-reported closure: any call the
// connection is part of is ended, rooms naming it are dropped, the registry
// entry is removed, and the roster is re-broadcast.
func (r *Router) Disconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns.Get(connID)
	if !ok {
		return
	}

	if conn.RoomID != "" && conn.PartnerID != "" {
		r.endCall(conn)
	}

	// Pending rooms never set the callee's pairing fields, so the callEnd
	// transition above cannot reach them. Sweep any room still naming this
	// connection to keep the registries consistent.
	r.dropRoomsNaming(connID)

	r.conns.Remove(connID)
	r.logger.Info("connection removed", "conn_id", connID, "user_id", conn.UserID)

	r.broadcastUserList()
}

// Stats returns current registry sizes for the status endpoint.
func (r *Router) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Stats{
		Clients: r.conns.Len(),
		Rooms:   r.rooms.Len(),
	}
}

func (r *Router) handleRegister(connID string, sender Sender, env event.Envelope) {
	var p event.RegisterPayload
	if err := env.DecodePayload(&p); err != nil {
		r.logger.Warn("bad register payload", "conn_id", connID, "error", err)
		r.sendError(sender, "Invalid message format")
		return
	}

	// Re-registration overwrites the entry and resets pairing state.
	r.conns.Add(&Conn{
		ID:             connID,
		UserID:         p.UserID,
		SpeakLanguage:  p.SpeakLanguage,
		ListenLanguage: p.ListenLanguage,
		sender:         sender,
	})

	r.logger.Info("user registered",
		"conn_id", connID,
		"user_id", p.UserID,
		"speaks", p.SpeakLanguage,
		"listens", p.ListenLanguage,
	)

	r.send(sender, event.TypeRegister, event.RegisterAck{
		Success:  true,
		ClientID: connID,
		Message:  "Successfully registered",
	})

	r.broadcastUserList()
}

func (r *Router) handleTranslation(connID string, env event.Envelope) {
	conn, ok := r.conns.Get(connID)
	if !ok {
		// Best-effort relay: unknown senders are dropped without a reply.
		r.logger.Debug("translation from unknown connection", "conn_id", connID)
		return
	}

	if conn.RoomID != "" && conn.PartnerID != "" {
		partner, ok := r.conns.Get(conn.PartnerID)
		if ok && partner.sender.IsOpen() {
			r.send(partner.sender, event.TypeTranslation, event.ForwardedTranslation(env.Payload))
			r.logger.Debug("translation forwarded", "from", connID, "to", conn.PartnerID)
		}
		return
	}

	// Unpaired connections broadcast to every other registered peer. This is
	// deliberate demo behavior, not an error state.
	r.conns.ForEach(func(other *Conn) {
		if other.ID == connID || !other.sender.IsOpen() {
			return
		}
		r.send(other.sender, event.TypeTranslation, event.ForwardedTranslation(env.Payload))
	})
}

func (r *Router) handleTyping(connID string) {
	conn, ok := r.conns.Get(connID)
	if !ok || conn.RoomID == "" || conn.PartnerID == "" {
		return
	}

	partner, ok := r.conns.Get(conn.PartnerID)
	if ok && partner.sender.IsOpen() {
		r.send(partner.sender, event.TypeTyping, event.TypingNotice{UserID: conn.UserID})
	}
}

func (r *Router) handleCallRequest(connID string, sender Sender, env event.Envelope) {
	var p event.CallRequestPayload
	if err := env.DecodePayload(&p); err != nil {
		r.logger.Warn("bad callRequest payload", "conn_id", connID, "error", err)
		r.sendError(sender, "Invalid message format")
		return
	}

	caller, ok := r.conns.Get(connID)
	if !ok {
		r.sendError(sender, "Not registered")
		return
	}

	// First registered connection with a matching userId wins; userIds are
	// not enforced unique and iteration order is unspecified.
	target, found := lo.Find(r.conns.Values(), func(c *Conn) bool {
		return c.UserID == p.To
	})
	if !found {
		r.sendError(sender, "Target user not found")
		return
	}

	roomID := uuid.NewString()
	r.rooms.Create(roomID, connID, target.ID)

	// Only the caller is bound at request time; the callee's pairing fields
	// stay untouched until acceptance.
	caller.RoomID = roomID

	r.send(target.sender, event.TypeCallRequest, event.CallRequestNotice{
		From:   p.From,
		RoomID: roomID,
	})

	r.scheduleExpiry(roomID)

	r.logger.Info("call requested",
		"from", p.From,
		"to", p.To,
		"room_id", roomID,
	)
}

func (r *Router) handleCallAccept(connID string, sender Sender, env event.Envelope) {
	var p event.CallAcceptPayload
	if err := env.DecodePayload(&p); err != nil {
		r.logger.Warn("bad callAccept payload", "conn_id", connID, "error", err)
		r.sendError(sender, "Invalid message format")
		return
	}

	room, ok := r.rooms.Get(p.RoomID)
	if !ok {
		r.sendError(sender, "Room not found")
		return
	}

	caller, callerOK := r.conns.Get(room.Caller)
	callee, calleeOK := r.conns.Get(room.Callee)
	if !callerOK || !calleeOK {
		// Disconnect sweeps rooms naming a removed connection, so a live
		// room with an unregistered party means the registries diverged.
		r.logger.Error("room references unregistered connection",
			"room_id", room.ID,
			"caller", room.Caller,
			"callee", room.Callee,
		)
		r.sendError(sender, "Room not found")
		return
	}

	r.cancelExpiry(room.ID)
	room.Status = StatusActive

	caller.RoomID = room.ID
	caller.PartnerID = callee.ID
	callee.RoomID = room.ID
	callee.PartnerID = caller.ID

	notice := event.CallAcceptNotice{RoomID: room.ID}
	r.send(caller.sender, event.TypeCallAccept, notice)
	r.send(callee.sender, event.TypeCallAccept, notice)

	r.logger.Info("call accepted", "room_id", room.ID)
}

func (r *Router) handleCallReject(connID string) {
	room, ok := r.rooms.FindByCallee(connID)
	if !ok {
		return
	}

	r.rejectRoom(room)
	r.logger.Info("call rejected", "room_id", room.ID)
}

func (r *Router) handleCallEnd(connID string) {
	conn, ok := r.conns.Get(connID)
	if !ok || conn.RoomID == "" || conn.PartnerID == "" {
		return
	}

	roomID := conn.RoomID
	r.endCall(conn)
	r.logger.Info("call ended", "room_id", roomID)
}

// endCall notifies the partner, clears both pairing states, and removes the
// room. The caller must hold r.mu and have checked that conn is in a call.
func (r *Router) endCall(conn *Conn) {
	partner, ok := r.conns.Get(conn.PartnerID)
	if ok && partner.sender.IsOpen() {
		r.send(partner.sender, event.TypeCallEnd, struct{}{})
	}
	if ok {
		partner.RoomID = ""
		partner.PartnerID = ""
	}

	r.cancelExpiry(conn.RoomID)
	r.rooms.Delete(conn.RoomID)
	conn.RoomID = ""
	conn.PartnerID = ""
}

// rejectRoom notifies the caller, clears its pairing state, and removes the
// room. Used for explicit rejection and pending-call expiry.
func (r *Router) rejectRoom(room *Room) {
	if caller, ok := r.conns.Get(room.Caller); ok {
		if caller.sender.IsOpen() {
			r.send(caller.sender, event.TypeCallReject, struct{}{})
		}
		caller.RoomID = ""
		caller.PartnerID = ""
	}

	r.cancelExpiry(room.ID)
	r.rooms.Delete(room.ID)
}

// dropRoomsNaming removes every room that still references connID. Pending
// rooms where connID is the callee are rejected so the caller learns the call
// is dead; rooms where connID is the caller are dropped silently because the
// callee was never bound to them.
func (r *Router) dropRoomsNaming(connID string) {
	for _, room := range r.roomsNaming(connID) {
		if room.Callee == connID {
			r.rejectRoom(room)
			continue
		}
		r.cancelExpiry(room.ID)
		r.rooms.Delete(room.ID)
	}
}

func (r *Router) roomsNaming(connID string) []*Room {
	var out []*Room
	for _, room := range r.rooms.rooms {
		if room.Caller == connID || room.Callee == connID {
			out = append(out, room)
		}
	}
	return out
}

// broadcastUserList sends the full roster to every registered connection.
// This is an O(connections^2) fan-out per trigger, acceptable at the scale
// this relay targets.
func (r *Router) broadcastUserList() {
	users := lo.Map(r.conns.Values(), func(c *Conn, _ int) event.UserInfo {
		return event.UserInfo{
			UserID:         c.UserID,
			SpeakLanguage:  c.SpeakLanguage,
			ListenLanguage: c.ListenLanguage,
			InCall:         c.InCall(),
		}
	})

	payload := event.UserListPayload{Users: users}
	r.conns.ForEach(func(c *Conn) {
		r.send(c.sender, event.TypeUserList, payload)
	})
}

func (r *Router) scheduleExpiry(roomID string) {
	if r.cfg.PendingCallTTL <= 0 {
		return
	}

	r.expiry[roomID] = time.AfterFunc(r.cfg.PendingCallTTL, func() {
		r.expirePending(roomID)
	})
}

func (r *Router) cancelExpiry(roomID string) {
	if timer, ok := r.expiry[roomID]; ok {
		timer.Stop()
		delete(r.expiry, roomID)
	}
}

// expirePending runs on the expiry timer goroutine and re-enters the Router
// through the same mutex every other transition uses.
func (r *Router) expirePending(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms.Get(roomID)
	if !ok || room.Status != StatusPending {
		return
	}

	r.rejectRoom(room)
	r.logger.Info("pending call expired", "room_id", roomID, "ttl", r.cfg.PendingCallTTL)
}

// send stamps and writes one outbound event, skipping closed handles. Failed
// sends are logged and dropped; every relay is best-effort, at-most-once.
func (r *Router) send(s Sender, typ string, payload any) {
	if s == nil || !s.IsOpen() {
		return
	}

	data, err := event.Encode(typ, payload)
	if err != nil {
		r.logger.Error("encode outbound event", "type", typ, "error", err)
		return
	}

	if !s.Send(data) {
		r.logger.Debug("dropped outbound event", "type", typ)
	}
}

func (r *Router) sendError(s Sender, msg string) {
	r.send(s, event.TypeError, event.ErrorPayload{Message: msg})
}
