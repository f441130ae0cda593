package event

// Active is a fired event still counting down its duration.
type Active struct {
	Data          *Data
	RemainingSecs float32
}

// Manager tracks per-trigger-type cooldowns and currently active events
// for one floor (or one running server instance, per the caller's scope).
type Manager struct {
	Active          []Active
	cooldowns       map[TriggerType]float32
	EventsTriggered uint64
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{cooldowns: make(map[TriggerType]float32)}
}

// IsOnCooldown reports whether triggerType still has remaining cooldown.
func (m *Manager) IsOnCooldown(triggerType TriggerType) bool {
	return m.cooldowns[triggerType] > 0
}

// SetCooldown starts (or restarts) a trigger type's cooldown timer.
func (m *Manager) SetCooldown(triggerType TriggerType, duration float32) {
	m.cooldowns[triggerType] = duration
}

// Tick advances all cooldowns and active event timers by dt seconds,
// pruning anything that has expired.
func (m *Manager) Tick(dt float32) {
	for t, remaining := range m.cooldowns {
		next := remaining - dt
		if next < 0 {
			next = 0
		}
		if next == 0 {
			delete(m.cooldowns, t)
		} else {
			m.cooldowns[t] = next
		}
	}

	live := m.Active[:0]
	for _, a := range m.Active {
		a.RemainingSecs -= dt
		if a.RemainingSecs > 0 {
			live = append(live, a)
		}
	}
	m.Active = live
}

// Fire records data as a newly-active event, starts its trigger type's
// default cooldown, and bumps the lifetime trigger counter.
func (m *Manager) Fire(data *Data) {
	m.Active = append(m.Active, Active{Data: data, RemainingSecs: data.DurationSecs})
	m.SetCooldown(data.TriggerType, data.TriggerType.DefaultCooldown())
	m.EventsTriggered++
}

// TryEvaluate evaluates triggerType against ctx, but only if it is not
// currently on cooldown; a fired event is recorded via Fire.
func (m *Manager) TryEvaluate(triggerType TriggerType, ctx *Context) *Data {
	if m.IsOnCooldown(triggerType) {
		return nil
	}
	data := Evaluate(triggerType, ctx)
	if data != nil {
		m.Fire(data)
	}
	return data
}
