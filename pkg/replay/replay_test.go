package replay

import "testing"

func TestFrameHash_Deterministic(t *testing.T) {
	f1 := Frame{Tick: 100, InputType: Attack, Payload: `{"combo":1}`}
	f2 := Frame{Tick: 100, InputType: Attack, Payload: `{"combo":1}`}
	if f1.Hash() != f2.Hash() {
		t.Fatal("expected identical frames to hash identically")
	}
}

func TestHeader_Creation(t *testing.T) {
	h := NewHeader("replay_1", 42, 10, "Player1", `{"weapon":"Sword"}`)
	if h.ReplayID != "replay_1" || h.Seed != 42 || h.FloorID != 10 {
		t.Fatalf("unexpected header: %+v", h)
	}
	if h.Version != 1 || h.Outcome != InProgress {
		t.Fatalf("unexpected defaults: %+v", h)
	}
}

func TestRecording_Creation(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	frames := []Frame{
		{Tick: 0, InputType: Move, Payload: `{"x":1.0,"y":0.0}`},
		{Tick: 1, InputType: Attack, Payload: `{"combo":1}`},
	}
	r := NewRecording(header, frames, nil)
	if len(r.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(r.Frames))
	}
	if !r.Verify() {
		t.Error("expected fresh recording to verify")
	}
}

func TestRecording_VerifyDetectsTampering(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	r := NewRecording(header, []Frame{{Tick: 0, InputType: Move, Payload: "{}"}}, nil)
	if !r.Verify() {
		t.Fatal("expected fresh recording to verify")
	}
	r.Frames = append(r.Frames, Frame{Tick: 1, InputType: Attack, Payload: ""})
	if r.Verify() {
		t.Error("expected modified recording to fail verification")
	}
}

func TestPlayback_Creation(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	frames := []Frame{{Tick: 0, InputType: Move}, {Tick: 1, InputType: Attack}}
	r := NewRecording(header, frames, nil)
	p := NewPlayback(r)

	if p.State != Idle || p.TotalFrames != 2 || p.Speed != 1.0 {
		t.Fatalf("unexpected playback init: %+v", p)
	}
}

func TestPlayback_Controls(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	r := NewRecording(header, nil, nil)
	p := NewPlayback(r)

	p.Play()
	if p.State != Playing {
		t.Fatal("expected Playing")
	}
	p.Pause()
	if p.State != Paused {
		t.Fatal("expected Paused")
	}
	p.Stop()
	if p.State != Idle || p.CurrentTick != 0 {
		t.Fatal("expected reset to Idle at tick 0")
	}
}

func TestPlayback_Seek(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	r := NewRecording(header, nil, nil)
	p := NewPlayback(r)

	p.Seek(500)
	if p.CurrentTick != 500 || p.State != Seeking {
		t.Fatalf("unexpected seek result: %+v", p)
	}
}

func TestPlayback_SpeedClamped(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	r := NewRecording(header, nil, nil)
	p := NewPlayback(r)

	p.SetSpeed(2.0)
	if p.Speed != 2.0 {
		t.Errorf("expected 2.0, got %f", p.Speed)
	}
	p.SetSpeed(20.0)
	if p.Speed != 10.0 {
		t.Errorf("expected clamp to 10.0, got %f", p.Speed)
	}
	p.SetSpeed(0.01)
	if p.Speed != 0.1 {
		t.Errorf("expected clamp to 0.1, got %f", p.Speed)
	}
}

func TestPlayback_Progress(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	frames := []Frame{{Tick: 0, InputType: Move}, {Tick: 1, InputType: Attack}}
	r := NewRecording(header, frames, nil)
	p := NewPlayback(r)

	if p.Progress() != 0.0 {
		t.Fatal("expected 0 progress initially")
	}
	p.CurrentFrameIdx = 1
	if d := p.Progress() - 0.5; d < -0.01 || d > 0.01 {
		t.Errorf("expected ~0.5 progress, got %f", p.Progress())
	}
	p.CurrentFrameIdx = 2
	if p.Progress() != 1.0 {
		t.Errorf("expected 1.0 progress, got %f", p.Progress())
	}
}

func TestPlayback_Advance(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	frames := []Frame{{Tick: 0, InputType: Move}, {Tick: 1, InputType: Attack}}
	r := NewRecording(header, frames, nil)
	p := NewPlayback(r)

	p.Play()
	f1 := p.Advance(r)
	if f1 == nil || f1.Tick != 0 {
		t.Fatal("expected first frame at tick 0")
	}
	f2 := p.Advance(r)
	if f2 == nil || f2.Tick != 1 {
		t.Fatal("expected second frame at tick 1")
	}
	f3 := p.Advance(r)
	if f3 != nil || p.State != Finished {
		t.Fatal("expected exhausted playback to finish")
	}
}

func TestPlayback_Loop(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	r := NewRecording(header, []Frame{{Tick: 0, InputType: Move}}, nil)
	p := NewPlayback(r)
	p.LoopPlayback = true

	p.Play()
	p.Advance(r)
	if p.State != Finished {
		t.Fatal("expected Finished after single frame")
	}

	f := p.Advance(r)
	if f == nil || p.State != Playing || p.CurrentFrameIdx != 1 {
		t.Fatal("expected looped restart")
	}
}

func TestRecorder_StartStop(t *testing.T) {
	r := NewRecorder()
	r.StartRecording(42, 10, "Player1", `{"weapon":"Sword"}`, 0)
	if !r.IsRecording() {
		t.Fatal("expected recording active")
	}

	r.RecordFrame(0, Move, "{}")
	r.RecordFrame(1, Attack, "{}")

	rec := r.StopRecording(Victory, nil, 100)
	if rec == nil {
		t.Fatal("expected recording result")
	}
	if len(rec.Frames) != 2 || rec.Header.Outcome != Victory || rec.Header.DurationTicks != 100 {
		t.Fatalf("unexpected recording: %+v", rec.Header)
	}
}

func TestRecorder_Cancel(t *testing.T) {
	r := NewRecorder()
	r.StartRecording(42, 10, "Player1", "{}", 0)
	r.RecordFrame(0, Move, "{}")

	r.CancelRecording()
	if r.IsRecording() {
		t.Error("expected recording cancelled")
	}
	if len(r.frames) != 0 {
		t.Error("expected frames cleared")
	}
}

func TestRecorder_IgnoresFramesWhenNotRecording(t *testing.T) {
	r := NewRecorder()
	r.RecordFrame(0, Move, "{}")
	if len(r.frames) != 0 {
		t.Error("expected no frames recorded outside a session")
	}
}

func TestSnapshot_ReflectsRecorderState(t *testing.T) {
	r := NewRecorder()
	r.StartRecording(42, 10, "Player1", "{}", 0)
	r.RecordFrame(0, Move, "{}")
	r.RecordFrame(1, Attack, "{}")

	snap := CaptureSnapshot(r)
	if !snap.IsRecording || snap.CurrentReplayID == "" || snap.RecordedFrames != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if len(snap.AvailableInputTypes) != 8 {
		t.Errorf("expected 8 input types, got %d", len(snap.AvailableInputTypes))
	}
}

func TestAllInputTypesHashable(t *testing.T) {
	types := []InputType{Move, Attack, Parry, Dodge, UseAbility, Interact, Jump, ChangeWeapon}
	for i, ty := range types {
		f := Frame{Tick: uint64(i), InputType: ty, Payload: "{}"}
		if f.Hash() == 0 {
			t.Errorf("expected nonzero hash for %v", ty)
		}
	}
}

func TestEstimatedSize(t *testing.T) {
	header := NewHeader("test", 42, 1, "P1", "{}")
	frames := []Frame{{Tick: 0, InputType: Move}, {Tick: 1, InputType: Attack}}
	r := NewRecording(header, frames, nil)
	if r.EstimatedSize() <= 200 {
		t.Error("expected size estimate larger than base header cost")
	}
}
