package ppu

import "encoding/binary"

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// SaveState serializes CPU-visible registers, VRAM/palette/OAM contents,
// raster position, and the mid-dot fetch/shift pipeline state. The
// secondary-OAM sprite buffers (secondary/secondaryN) are not saved: after
// a load they stay as they were in the receiving PPU until the next sprite
// evaluation at dot 257, so sprites on the scanline after the load can
// differ.
func (p *PPU) SaveState() []byte {
	buf := make([]byte, 0, 2600)
	buf = append(buf, p.ctrl, p.mask, p.status, p.oamAddr)
	buf = binary.LittleEndian.AppendUint16(buf, p.v)
	buf = binary.LittleEndian.AppendUint16(buf, p.t)
	buf = append(buf, p.x, boolByte(p.w), p.readBuffer, p.openBus)
	buf = append(buf, p.nametables[:]...)
	buf = append(buf, p.palette[:]...)
	buf = append(buf, p.oam[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(p.scanline)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(p.dot)))
	buf = append(buf, boolByte(p.oddFrame), boolByte(p.nmiOccurred), boolByte(p.nmiOutput))
	buf = binary.LittleEndian.AppendUint16(buf, p.bgShiftLo)
	buf = binary.LittleEndian.AppendUint16(buf, p.bgShiftHi)
	buf = binary.LittleEndian.AppendUint16(buf, p.bgAttrShiftLo)
	buf = binary.LittleEndian.AppendUint16(buf, p.bgAttrShiftHi)
	buf = append(buf, p.ntLatch, p.atLatch, p.tileLoLatch, p.tileHiLatch)
	buf = append(buf, boolByte(p.sprite0HitPossible), boolByte(p.sprite0HitThisLine), boolByte(p.spriteOverflow))
	return buf
}

// LoadState restores state previously produced by SaveState.
func (p *PPU) LoadState(data []byte) {
	const fixedHeader = 4 + 2 + 2 + 4
	if len(data) < fixedHeader+len(p.nametables)+len(p.palette)+len(p.oam) {
		return
	}
	i := 0
	p.ctrl, p.mask, p.status, p.oamAddr = data[0], data[1], data[2], data[3]
	i = 4
	p.v = binary.LittleEndian.Uint16(data[i:])
	i += 2
	p.t = binary.LittleEndian.Uint16(data[i:])
	i += 2
	p.x, p.w, p.readBuffer, p.openBus = data[i], data[i+1] != 0, data[i+2], data[i+3]
	i += 4
	copy(p.nametables[:], data[i:])
	i += len(p.nametables)
	copy(p.palette[:], data[i:])
	i += len(p.palette)
	copy(p.oam[:], data[i:])
	i += len(p.oam)
	if len(data) < i+4+4+3+2+2+2+2+4+3 {
		return
	}
	p.scanline = int(int32(binary.LittleEndian.Uint32(data[i:])))
	i += 4
	p.dot = int(int32(binary.LittleEndian.Uint32(data[i:])))
	i += 4
	p.oddFrame, p.nmiOccurred, p.nmiOutput = data[i] != 0, data[i+1] != 0, data[i+2] != 0
	i += 3
	p.bgShiftLo = binary.LittleEndian.Uint16(data[i:])
	i += 2
	p.bgShiftHi = binary.LittleEndian.Uint16(data[i:])
	i += 2
	p.bgAttrShiftLo = binary.LittleEndian.Uint16(data[i:])
	i += 2
	p.bgAttrShiftHi = binary.LittleEndian.Uint16(data[i:])
	i += 2
	p.ntLatch, p.atLatch, p.tileLoLatch, p.tileHiLatch = data[i], data[i+1], data[i+2], data[i+3]
	i += 4
	p.sprite0HitPossible, p.sprite0HitThisLine, p.spriteOverflow = data[i] != 0, data[i+1] != 0, data[i+2] != 0
}
