// Package replay records player input streams and deterministically
// replays them against a freshly generated floor for determinism
// verification and spectating.
package replay

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"github.com/ashfall/worldcore/pkg/deltalog"
)

// InputType enumerates the eight recordable player input variants.
type InputType int

const (
	Move InputType = iota
	Attack
	Parry
	Dodge
	UseAbility
	Interact
	Jump
	ChangeWeapon
)

var inputTypeNames = [...]string{
	"Move", "Attack", "Parry", "Dodge", "UseAbility", "Interact", "Jump", "ChangeWeapon",
}

func (t InputType) String() string {
	if int(t) < 0 || int(t) >= len(inputTypeNames) {
		return "Unknown"
	}
	return inputTypeNames[t]
}

// Frame is a single recorded input at a fixed-rate tick (10 ticks/s).
type Frame struct {
	Tick      uint64
	InputType InputType
	Payload   string
}

// Hash computes this frame's integrity contribution: H(tick ‖
// input_type ‖ payload), SHA3-256 truncated to 64 bits.
func (f Frame) Hash() uint64 {
	h := sha3.New256()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], f.Tick)
	h.Write(buf[:])
	var tbuf [4]byte
	binary.LittleEndian.PutUint32(tbuf[:], uint32(f.InputType))
	h.Write(tbuf[:])
	h.Write([]byte(f.Payload))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// Outcome is how a recorded encounter ended.
type Outcome int

const (
	InProgress Outcome = iota
	Victory
	Death
	Abandoned
)

// Header is a recording's metadata.
type Header struct {
	ReplayID      string
	Seed          uint64
	FloorID       uint32
	PlayerName    string
	PlayerBuild   string // JSON: weapon, stats, abilities
	StartTimeUnix int64
	DurationTicks uint64
	TotalFrames   int
	Outcome       Outcome
	Version       uint32
}

// NewHeader returns a fresh in-progress header for a recording about to
// start.
func NewHeader(replayID string, seed uint64, floorID uint32, playerName, playerBuild string) Header {
	return Header{
		ReplayID:    replayID,
		Seed:        seed,
		FloorID:     floorID,
		PlayerName:  playerName,
		PlayerBuild: playerBuild,
		Outcome:     InProgress,
		Version:     1,
	}
}

// Recording is a complete captured encounter: header, input frames, and
// a terminal DeltaLog snapshot for determinism verification.
type Recording struct {
	Header        Header
	Frames        []Frame
	FinalDeltas   []deltalog.Delta
	RecordingHash uint64
}

// NewRecording packages header, frames, and a final-delta snapshot into
// a hash-verified recording.
func NewRecording(header Header, frames []Frame, finalDeltas []deltalog.Delta) *Recording {
	r := &Recording{Header: header, Frames: frames, FinalDeltas: finalDeltas}
	r.RecordingHash = r.computeHash()
	return r
}

// computeHash chains seed ‖ floor_id ‖ ∀frame(frame.Hash()).
func (r *Recording) computeHash() uint64 {
	h := sha3.New256()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], r.Header.Seed)
	h.Write(buf[:])
	var fbuf [4]byte
	binary.LittleEndian.PutUint32(fbuf[:], r.Header.FloorID)
	h.Write(fbuf[:])
	for _, frame := range r.Frames {
		var hbuf [8]byte
		binary.LittleEndian.PutUint64(hbuf[:], frame.Hash())
		h.Write(hbuf[:])
	}
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// Verify reports whether RecordingHash matches the recomputed chain.
func (r *Recording) Verify() bool {
	return r.RecordingHash == r.computeHash()
}

// EstimatedSize estimates the recording's serialized size in bytes.
func (r *Recording) EstimatedSize() int {
	return 200 + len(r.Frames)*50 + len(r.FinalDeltas)*80
}

// State is the playback state machine's current state.
type State int

const (
	Idle State = iota
	Playing
	Paused
	Seeking
	Finished
	Error
)

// Playback drives a Recording frame-by-frame.
type Playback struct {
	RecordingID     string
	State           State
	CurrentTick     uint64
	CurrentFrameIdx int
	TotalFrames     int
	Speed           float32
	LoopPlayback    bool
}

// NewPlayback returns an idle Playback positioned at the start of
// recording.
func NewPlayback(recording *Recording) *Playback {
	return &Playback{
		RecordingID: recording.Header.ReplayID,
		State:       Idle,
		TotalFrames: len(recording.Frames),
		Speed:       1.0,
	}
}

// Play resumes playback, refusing to restart a finished non-looping
// recording.
func (p *Playback) Play() {
	if p.State == Finished && !p.LoopPlayback {
		return
	}
	p.State = Playing
}

// Pause halts playback if currently playing.
func (p *Playback) Pause() {
	if p.State == Playing {
		p.State = Paused
	}
}

// Stop resets playback to the beginning and returns to Idle.
func (p *Playback) Stop() {
	p.State = Idle
	p.CurrentTick = 0
	p.CurrentFrameIdx = 0
}

// Seek jumps to targetTick, entering the Seeking state.
func (p *Playback) Seek(targetTick uint64) {
	p.CurrentTick = targetTick
	p.State = Seeking
}

// SetSpeed clamps and applies a new playback speed multiplier.
func (p *Playback) SetSpeed(speed float32) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 10.0 {
		speed = 10.0
	}
	p.Speed = speed
}

// Progress returns playback completion in [0, 1].
func (p *Playback) Progress() float32 {
	if p.TotalFrames == 0 {
		return 0.0
	}
	v := float32(p.CurrentFrameIdx) / float32(p.TotalFrames)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// Advance consumes the next frame if playing, returning nil when not
// playing or at the end. Looping recordings restart transparently
// instead of surfacing Finished on the next call.
func (p *Playback) Advance(recording *Recording) *Frame {
	didLoop := false
	if p.State == Finished && p.LoopPlayback {
		p.CurrentFrameIdx = 0
		p.CurrentTick = 0
		p.State = Playing
		didLoop = true
	}

	if p.State != Playing {
		return nil
	}

	if p.CurrentFrameIdx >= len(recording.Frames) {
		p.State = Finished
		return nil
	}

	frame := recording.Frames[p.CurrentFrameIdx]
	p.CurrentTick = frame.Tick
	p.CurrentFrameIdx++

	if !didLoop && p.CurrentFrameIdx >= len(recording.Frames) {
		p.State = Finished
	}

	return &frame
}

// Recorder captures an in-progress recording session.
type Recorder struct {
	recording     bool
	currentHeader *Header
	frames        []Frame
	startTick     uint64
}

// NewRecorder returns an idle Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// StartRecording begins capturing a new encounter at currentTick.
func (r *Recorder) StartRecording(seed uint64, floorID uint32, playerName, playerBuild string, currentTick uint64) {
	replayID := uuid.NewString()
	header := NewHeader(replayID, seed, floorID, playerName, playerBuild)

	r.recording = true
	r.currentHeader = &header
	r.frames = nil
	r.startTick = currentTick
}

// RecordFrame appends an input frame, a no-op if not currently
// recording.
func (r *Recorder) RecordFrame(tick uint64, inputType InputType, payload string) {
	if !r.recording {
		return
	}
	r.frames = append(r.frames, Frame{Tick: tick, InputType: inputType, Payload: payload})
}

// StopRecording finalizes the current recording, or returns nil if no
// recording was in progress.
func (r *Recorder) StopRecording(outcome Outcome, finalDeltas []deltalog.Delta, currentTick uint64) *Recording {
	if !r.recording {
		return nil
	}
	r.recording = false

	header := *r.currentHeader
	r.currentHeader = nil

	duration := currentTick - r.startTick
	if currentTick < r.startTick {
		duration = 0
	}
	header.DurationTicks = duration
	header.TotalFrames = len(r.frames)
	header.Outcome = outcome
	header.StartTimeUnix = time.Now().UTC().Unix()

	recording := NewRecording(header, r.frames, finalDeltas)
	r.frames = nil
	return recording
}

// CancelRecording discards the in-progress recording without producing
// a Recording.
func (r *Recorder) CancelRecording() {
	r.recording = false
	r.currentHeader = nil
	r.frames = nil
}

// IsRecording reports whether a recording is currently in progress.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// Snapshot is a lightweight view of recorder state for external status
// reporting (e.g. an admin/debug endpoint).
type Snapshot struct {
	IsRecording         bool
	CurrentReplayID     string
	RecordedFrames      int
	AvailableInputTypes []string
}

// CaptureSnapshot returns a Snapshot of r's current state.
func CaptureSnapshot(r *Recorder) Snapshot {
	replayID := ""
	if r.currentHeader != nil {
		replayID = r.currentHeader.ReplayID
	}
	types := make([]string, len(inputTypeNames))
	copy(types, inputTypeNames[:])
	return Snapshot{
		IsRecording:         r.recording,
		CurrentReplayID:     replayID,
		RecordedFrames:      len(r.frames),
		AvailableInputTypes: types,
	}
}
