package apu

import (
	"encoding/binary"
	"math"
)

func math64bits(f float64) uint64       { return math.Float64bits(f) }
func math64FromBits(b uint64) float64   { return math.Float64frombits(b) }
func float32bits(f float32) uint32      { return math.Float32bits(f) }
func float32FromBits(b uint32) float32  { return math.Float32frombits(b) }

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func appendEnvelope(buf []byte, e *envelope) []byte {
	return append(buf, boolByte(e.start), e.decay, e.divider, boolByte(e.loop), boolByte(e.const_), e.volume)
}

func readEnvelope(data []byte, e *envelope) {
	e.start, e.decay, e.divider = data[0] != 0, data[1], data[2]
	e.loop, e.const_, e.volume = data[3] != 0, data[4] != 0, data[5]
}

func appendSweep(buf []byte, s *sweep) []byte {
	return append(buf, boolByte(s.enabled), s.period, boolByte(s.negate), s.shift, boolByte(s.reload), s.divider)
}

func readSweep(data []byte, s *sweep) {
	s.enabled, s.period = data[0] != 0, data[1]
	s.negate, s.shift = data[2] != 0, data[3]
	s.reload, s.divider = data[4] != 0, data[5]
}

func appendPulse(buf []byte, p *pulse) []byte {
	buf = appendEnvelope(buf, &p.env)
	buf = appendSweep(buf, &p.sw)
	buf = append(buf, p.duty, p.dutyPos)
	buf = binary.LittleEndian.AppendUint16(buf, p.timer)
	buf = binary.LittleEndian.AppendUint16(buf, p.timerCount)
	buf = append(buf, p.length, boolByte(p.lengthHalt), boolByte(p.enabled))
	return buf
}

func readPulse(data []byte, p *pulse) int {
	readEnvelope(data, &p.env)
	readSweep(data[6:], &p.sw)
	i := 12
	p.duty, p.dutyPos = data[i], data[i+1]
	i += 2
	p.timer = binary.LittleEndian.Uint16(data[i:])
	i += 2
	p.timerCount = binary.LittleEndian.Uint16(data[i:])
	i += 2
	p.length, p.lengthHalt, p.enabled = data[i], data[i+1] != 0, data[i+2] != 0
	return i + 3
}

// SaveState serializes every channel and frame-sequencer field needed to
// resume sample output bit-identically.
func (a *APU) SaveState() []byte {
	var buf []byte
	buf = appendPulse(buf, &a.pulse1)
	buf = appendPulse(buf, &a.pulse2)

	buf = append(buf, boolByte(a.tri.lengthHalt), a.tri.linearLoad, a.tri.linearCount, boolByte(a.tri.linearReload))
	buf = binary.LittleEndian.AppendUint16(buf, a.tri.timer)
	buf = binary.LittleEndian.AppendUint16(buf, a.tri.timerCount)
	buf = append(buf, a.tri.length, a.tri.seqPos, boolByte(a.tri.enabled))

	buf = appendEnvelope(buf, &a.noi.env)
	buf = append(buf, boolByte(a.noi.mode))
	buf = binary.LittleEndian.AppendUint16(buf, a.noi.period)
	buf = binary.LittleEndian.AppendUint16(buf, a.noi.timerCount)
	buf = binary.LittleEndian.AppendUint16(buf, a.noi.shift)
	buf = append(buf, a.noi.length, boolByte(a.noi.lengthHalt), boolByte(a.noi.enabled))

	buf = append(buf, boolByte(a.frameMode), boolByte(a.frameIRQ), boolByte(a.irqEnable), boolByte(a.evenCycle))
	buf = binary.LittleEndian.AppendUint32(buf, a.cycle)
	buf = binary.LittleEndian.AppendUint64(buf, math64bits(a.sampleAccum))
	buf = binary.LittleEndian.AppendUint32(buf, float32bits(a.lastSample))
	return buf
}

// LoadState restores state previously produced by SaveState.
func (a *APU) LoadState(data []byte) {
	i := readPulse(data, &a.pulse1)
	i += readPulse(data[i:], &a.pulse2)

	a.tri.lengthHalt, a.tri.linearLoad, a.tri.linearCount, a.tri.linearReload =
		data[i] != 0, data[i+1], data[i+2], data[i+3] != 0
	i += 4
	a.tri.timer = binary.LittleEndian.Uint16(data[i:])
	i += 2
	a.tri.timerCount = binary.LittleEndian.Uint16(data[i:])
	i += 2
	a.tri.length, a.tri.seqPos, a.tri.enabled = data[i], data[i+1], data[i+2] != 0
	i += 3

	readEnvelope(data[i:], &a.noi.env)
	i += 6
	a.noi.mode = data[i] != 0
	i++
	a.noi.period = binary.LittleEndian.Uint16(data[i:])
	i += 2
	a.noi.timerCount = binary.LittleEndian.Uint16(data[i:])
	i += 2
	a.noi.shift = binary.LittleEndian.Uint16(data[i:])
	i += 2
	a.noi.length, a.noi.lengthHalt, a.noi.enabled = data[i], data[i+1] != 0, data[i+2] != 0
	i += 3

	a.frameMode, a.frameIRQ, a.irqEnable, a.evenCycle =
		data[i] != 0, data[i+1] != 0, data[i+2] != 0, data[i+3] != 0
	i += 4
	a.cycle = binary.LittleEndian.Uint32(data[i:])
	i += 4
	a.sampleAccum = math64FromBits(binary.LittleEndian.Uint64(data[i:]))
	i += 8
	a.lastSample = float32FromBits(binary.LittleEndian.Uint32(data[i:]))
}
