package apu

import "testing"

func TestEnvelopeStartLoadsDecayToFifteen(t *testing.T) {
	var e envelope
	e.write(0x05) // volume 5, not constant, not looping
	e.start = true
	e.clock()
	if e.decay != 15 || e.divider != e.volume {
		t.Fatalf("decay=%d divider=%d, want decay=15 divider=%d", e.decay, e.divider, e.volume)
	}
}

func TestEnvelopeDecaysThenLoopsWhenSet(t *testing.T) {
	var e envelope
	e.write(0x20) // volume 0, looping
	e.start = true
	e.clock() // start -> decay=15, divider=0
	for i := 0; i < 16; i++ {
		e.clock()
	}
	if e.decay != 15 {
		t.Fatalf("looping envelope should wrap back to 15 after reaching 0, got %d", e.decay)
	}
}

func TestSweepTargetPeriodPulse1SubtractsOneExtra(t *testing.T) {
	var s sweep
	s.shift = 1
	s.negate = true
	target1 := s.targetPeriod(100, true)
	target2 := s.targetPeriod(100, false)
	if target1 != target2-1 {
		t.Fatalf("pulse1 target=%d pulse2 target=%d, pulse1 should be exactly one less", target1, target2)
	}
}

func TestPulseLengthCounterHaltedNeverDecrements(t *testing.T) {
	p := pulse{length: 10, lengthHalt: true}
	p.clockLength()
	if p.length != 10 {
		t.Fatalf("halted length counter should not decrement, got %d", p.length)
	}
	p.lengthHalt = false
	p.clockLength()
	if p.length != 9 {
		t.Fatalf("unhalted length counter should decrement, got %d", p.length)
	}
}

func TestPulseMutedBelowMinimumPeriod(t *testing.T) {
	p := pulse{timer: 7, length: 1}
	if !p.muted() {
		t.Fatalf("a pulse with timer < 8 should be muted")
	}
}

func TestTriangleSequenceRequiresBothCounters(t *testing.T) {
	tr := triangle{timer: 0, length: 1, linearCount: 1}
	tr.clockTimer() // timerCount 0 -> reload and advance since both counters nonzero
	if tr.seqPos != 1 {
		t.Fatalf("seqPos = %d, want 1 (advanced once)", tr.seqPos)
	}

	tr2 := triangle{timer: 0, length: 0, linearCount: 1}
	tr2.clockTimer()
	if tr2.seqPos != 0 {
		t.Fatalf("seqPos should not advance while the length counter is silenced")
	}
}

func TestNoiseShiftRegisterFeedbackMode0(t *testing.T) {
	n := newNoise()
	n.period = 0
	before := n.shift
	n.clockTimer()
	bit0 := before & 1
	bit1 := (before >> 1) & 1
	wantFeedback := bit0 ^ bit1
	wantShift := (before >> 1) | (wantFeedback << 14)
	if n.shift != wantShift {
		t.Fatalf("shift = %015b, want %015b", n.shift, wantShift)
	}
}

func TestFrameSequencerFourStepFiresIRQAtStep4b(t *testing.T) {
	a := New(44100)
	a.Reset()
	var irqStates []bool
	a.SetIRQLine(func(v bool) { irqStates = append(irqStates, v) })

	for i := uint32(0); i < step4b; i++ {
		a.clockFrameSequencer()
	}
	if !a.frameIRQ {
		t.Fatalf("frame IRQ flag should be set at step 4b in 4-step mode")
	}
	if len(irqStates) == 0 || !irqStates[len(irqStates)-1] {
		t.Fatalf("IRQ line callback should have been driven high")
	}
}

func TestFrameSequencerFiveStepNeverSetsIRQ(t *testing.T) {
	a := New(44100)
	a.Reset()
	a.WriteRegister(0x4017, 0x80) // 5-step mode
	for i := uint32(0); i < step5b+10; i++ {
		a.clockFrameSequencer()
	}
	if a.frameIRQ {
		t.Fatalf("5-step mode should never set the frame IRQ flag")
	}
}

func TestDisablingFrameIRQClearsFlagImmediately(t *testing.T) {
	a := New(44100)
	a.Reset()
	a.frameIRQ = true
	a.WriteRegister(0x4017, 0x40) // disable frame IRQ
	if a.frameIRQ {
		t.Fatalf("writing $4017 with bit 6 set should clear a pending frame IRQ")
	}
}

func TestMixProducesZeroWithAllChannelsSilent(t *testing.T) {
	a := New(44100)
	a.Reset()
	a.tri.seqPos = 15 // triangleSequence[15] == 0; the sequencer is free-running
	if v := a.mix(); v != 0 {
		t.Fatalf("mix() with everything silent = %v, want 0", v)
	}
}

func TestMixWeightsPulsesTriangleAndNoise(t *testing.T) {
	a := New(44100)
	a.Reset()
	a.tri.seqPos = 15 // silence the free-running triangle sequencer
	a.pulse1.length = 1
	a.pulse1.env.const_ = true
	a.pulse1.env.volume = 15
	a.pulse1.duty = 2
	a.pulse1.dutyPos = 2 // dutyTable[2][2] == 1
	a.pulse1.timer = 100
	got := a.mix()
	want := float32(0.00752 * 15)
	if got != want {
		t.Fatalf("mix() = %v, want %v", got, want)
	}
}

func TestDrainSamplesClearsBuffer(t *testing.T) {
	a := New(44100)
	a.Reset()
	for i := 0; i < 1000; i++ {
		a.Tick()
	}
	first := a.DrainSamples()
	if len(first) == 0 {
		t.Fatalf("expected at least one sample after 1000 ticks")
	}
	second := a.DrainSamples()
	if len(second) != 0 {
		t.Fatalf("DrainSamples should clear the buffer, got %d leftover samples", len(second))
	}
}

func TestSaveStateLoadStateRoundTrip(t *testing.T) {
	a := New(44100)
	a.Reset()
	a.WriteRegister(0x4000, 0x3F)
	a.WriteRegister(0x4002, 0xAB)
	a.WriteRegister(0x4003, 0x04)
	a.WriteRegister(0x400E, 0x0A)
	a.frameMode = true
	a.cycle = 12345

	saved := a.SaveState()

	fresh := New(44100)
	fresh.Reset()
	fresh.LoadState(saved)

	if fresh.pulse1.timer != a.pulse1.timer || fresh.pulse1.duty != a.pulse1.duty {
		t.Fatalf("pulse1 state mismatch after restore")
	}
	if fresh.noi.period != a.noi.period {
		t.Fatalf("noise period mismatch after restore: %d vs %d", fresh.noi.period, a.noi.period)
	}
	if fresh.frameMode != a.frameMode || fresh.cycle != a.cycle {
		t.Fatalf("frame sequencer state mismatch after restore")
	}
}
