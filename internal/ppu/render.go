package ppu

// Palette is the 2C02's fixed 64-entry NTSC RGB lookup table, indexed by a
// 6-bit color code read out of the palette RAM.
var Palette = [64]uint32{
	0x626262, 0x001FB2, 0x2404C8, 0x5200B2, 0x730076, 0x800024, 0x730B00, 0x522800,
	0x244400, 0x005700, 0x005C00, 0x005324, 0x003C76, 0x000000, 0x000000, 0x000000,
	0xABABAB, 0x0D57FF, 0x4B30FF, 0x8A13FF, 0xBC08D6, 0xD21269, 0xC72E00, 0x9D5400,
	0x607B00, 0x209800, 0x00A300, 0x009942, 0x007DB4, 0x000000, 0x000000, 0x000000,
	0xFFFFFF, 0x53AEFF, 0x9085FF, 0xD365FF, 0xFF57FF, 0xFF5DCF, 0xFF7757, 0xFA9E00,
	0xBDC700, 0x7AE700, 0x43F611, 0x26EF7E, 0x2CD5F6, 0x4E4E4E, 0x000000, 0x000000,
	0xFFFFFF, 0xB6E1FF, 0xCED1FF, 0xE9C3FF, 0xFFBCFF, 0xFFBDF4, 0xFFC6C3, 0xFFD59A,
	0xE8E681, 0xCEF481, 0xB6FB9A, 0xA9FAC3, 0xA9F0F4, 0xB8B8B8, 0x000000, 0x000000,
}

// Tick advances the PPU by exactly one dot (pixel clock), the 1:3 ratio
// relative to the CPU being the Bus's responsibility, not the PPU's.
func (p *PPU) Tick() {
	if p.scanline < visibleScanlines {
		p.visibleOrPrerenderDot(false)
	} else if p.scanline == preRenderScanline {
		p.visibleOrPrerenderDot(true)
	} else if p.scanline == vblankStartScanline && p.dot == 1 {
		p.status |= 0x80
		p.nmiOccurred = true
		if p.nmiOutput {
			p.pulseNMI()
		}
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > preRenderScanline {
			p.scanline = 0
			p.oddFrame = !p.oddFrame
		}
	}
	// Odd-frame dot skip: the pre-render line's last dot is cut short by
	// one PPU cycle when rendering is enabled, so the frame starts a cycle
	// earlier.
	if p.scanline == preRenderScanline && p.dot == 339 && p.oddFrame && p.renderingEnabled() {
		p.dot = 340
	}
}

func (p *PPU) visibleOrPrerenderDot(prerender bool) {
	if prerender && p.dot == 1 {
		p.status &^= 0xE0
		p.nmiOccurred = false
		p.sprite0HitThisLine = false
		p.spriteOverflow = false
	}

	if !p.renderingEnabled() {
		if !prerender && p.dot >= 1 && p.dot <= 256 {
			p.emitPixel()
		}
		return
	}

	fetchPhase := (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)
	if fetchPhase {
		p.backgroundFetchCycle()
	}

	if !prerender && p.dot >= 1 && p.dot <= 256 {
		p.emitPixel()
	}

	if p.dot >= 1 && p.dot <= 256 {
		p.shiftBackground()
	}

	if p.dot == 256 {
		p.incrementY()
	}
	if p.dot == 257 {
		p.copyHorizontal()
		if !prerender {
			p.evaluateSprites()
		}
	}
	if prerender && p.dot >= 280 && p.dot <= 304 {
		p.copyVertical()
	}
	if p.dot == 260 {
		p.cart.Scanline()
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontal() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVertical() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// backgroundFetchCycle performs the 8-dot repeating NT/AT/low-BG/high-BG
// fetch sequence and reloads the shift registers every 8th dot.
func (p *PPU) backgroundFetchCycle() {
	switch p.dot % 8 {
	case 1:
		p.reloadShiftRegisters()
		ntAddr := 0x2000 | (p.v & 0x0FFF)
		p.ntLatch = p.busRead(ntAddr)
	case 3:
		atAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		at := p.busRead(atAddr)
		shift := ((p.v >> 4) & 4) | (p.v & 2)
		p.atLatch = (at >> shift) & 0x03
	case 5:
		fineY := (p.v >> 12) & 0x07
		addr := p.bgPatternTable() + uint16(p.ntLatch)*16 + fineY
		p.tileLoLatch = p.busRead(addr)
	case 7:
		fineY := (p.v >> 12) & 0x07
		addr := p.bgPatternTable() + uint16(p.ntLatch)*16 + fineY + 8
		p.tileHiLatch = p.busRead(addr)
	case 0:
		p.incrementCoarseX()
	}
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) reloadShiftRegisters() {
	p.bgShiftLo = (p.bgShiftLo &^ 0x00FF) | uint16(p.tileLoLatch)
	p.bgShiftHi = (p.bgShiftHi &^ 0x00FF) | uint16(p.tileHiLatch)
	lo := uint16(0)
	hi := uint16(0)
	if p.atLatch&1 != 0 {
		lo = 0x00FF
	}
	if p.atLatch&2 != 0 {
		hi = 0x00FF
	}
	p.bgAttrShiftLo = (p.bgAttrShiftLo &^ 0x00FF) | lo
	p.bgAttrShiftHi = (p.bgAttrShiftHi &^ 0x00FF) | hi
}

func (p *PPU) shiftBackground() {
	p.bgShiftLo <<= 1
	p.bgShiftHi <<= 1
	p.bgAttrShiftLo <<= 1
	p.bgAttrShiftHi <<= 1
}

func (p *PPU) backgroundPixel() (color uint8, opaque bool) {
	if !p.showBackground() {
		return 0, false
	}
	if p.dot <= 8 && p.mask&0x02 == 0 {
		return 0, false
	}
	bit := uint16(0x8000) >> p.x
	lo := uint8(0)
	hi := uint8(0)
	if p.bgShiftLo&bit != 0 {
		lo = 1
	}
	if p.bgShiftHi&bit != 0 {
		hi = 1
	}
	patternIdx := lo | hi<<1
	if patternIdx == 0 {
		return 0, false
	}
	attrLo := uint8(0)
	attrHi := uint8(0)
	if p.bgAttrShiftLo&bit != 0 {
		attrLo = 1
	}
	if p.bgAttrShiftHi&bit != 0 {
		attrHi = 1
	}
	palette := attrLo | attrHi<<1
	return p.readPalette(0x3F00 + uint16(palette)*4 + uint16(patternIdx)), true
}

// evaluateSprites builds the secondary OAM set for the NEXT scanline,
// reproducing the documented sprite-overflow bug: once eight sprites have
// been found, the evaluator keeps scanning OAM but (due to the hardware
// bug) increments its byte pointer through all four bytes of each entry
// instead of just the Y byte, causing bogus overflow-flag behavior on
// certain OAM layouts.
func (p *PPU) evaluateSprites() {
	height := p.spriteSize()
	targetLine := p.scanline + 1
	p.secondaryN = 0
	p.sprite0HitPossible = false

	n, m := 0, 0
	full := false
	for n < 64 {
		y := int(p.oam[n*4+m])
		if targetLine >= y && targetLine < y+height {
			if p.secondaryN < 8 {
				p.loadSecondary(p.secondaryN, n, y, targetLine, height)
				if n == 0 {
					p.sprite0HitPossible = true
				}
				p.secondaryN++
			} else {
				p.spriteOverflow = true
				p.status |= 0x20
				break
			}
		}
		n++
		if full {
			// The hardware bug: with secondary OAM already full, a miss
			// advances the byte index along with the sprite index, so
			// later checks read tile, attribute or X bytes as Y.
			m = (m + 1) & 3
		}
		full = p.secondaryN == 8
	}
}

func (p *PPU) loadSecondary(slot, spriteIdx, y, targetLine, height int) {
	tile := p.oam[spriteIdx*4+1]
	attr := p.oam[spriteIdx*4+2]
	x := p.oam[spriteIdx*4+3]
	row := targetLine - y
	if attr&0x80 != 0 {
		row = height - 1 - row
	}

	var base uint16
	var patternIdx uint16
	if height == 16 {
		base = 0x1000 * uint16(tile&1)
		patternIdx = uint16(tile &^ 1)
		if row >= 8 {
			patternIdx++
			row -= 8
		}
	} else {
		base = p.spritePatternTable()
		patternIdx = uint16(tile)
	}

	addr := base + patternIdx*16 + uint16(row)
	lo := p.busRead(addr)
	hi := p.busRead(addr + 8)
	if attr&0x40 != 0 {
		lo = reverseBits(lo)
		hi = reverseBits(hi)
	}

	p.secondary[slot] = spriteSlot{
		tileLo:       lo,
		tileHi:       hi,
		attr:         attr,
		x:            x,
		isSpriteZero: spriteIdx == 0,
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

func (p *PPU) spritePixel() (color uint8, opaque, isZero, priority bool) {
	if !p.showSprites() {
		return 0, false, false, false
	}
	if p.dot <= 8 && p.mask&0x04 == 0 {
		return 0, false, false, false
	}
	col := p.dot - 1
	for i := 0; i < p.secondaryN; i++ {
		s := &p.secondary[i]
		offset := col - int(s.x)
		if offset < 0 || offset > 7 {
			continue
		}
		bit := uint(7 - offset)
		lo := (s.tileLo >> bit) & 1
		hi := (s.tileHi >> bit) & 1
		idx := lo | hi<<1
		if idx == 0 {
			continue
		}
		palette := 4 + s.attr&0x03
		c := p.readPalette(0x3F00 + uint16(palette)*4 + uint16(idx))
		return c, true, s.isSpriteZero, s.attr&0x20 != 0
	}
	return 0, false, false, false
}

func (p *PPU) emitPixel() {
	col := p.dot - 1
	if col < 0 || col >= 256 || p.scanline < 0 || p.scanline >= 240 {
		return
	}

	bgColor, bgOpaque := p.backgroundPixel()
	spColor, spOpaque, spZero, spBehind := p.spritePixel()

	var out uint8
	switch {
	case !bgOpaque && !spOpaque:
		out = p.readPalette(0x3F00)
	case !bgOpaque && spOpaque:
		out = spColor
	case bgOpaque && !spOpaque:
		out = bgColor
	default:
		if spZero && p.sprite0HitPossible && !p.sprite0HitThisLine && col != 255 {
			p.status |= 0x40
			p.sprite0HitThisLine = true
		}
		if spBehind {
			out = bgColor
		} else {
			out = spColor
		}
	}

	p.frame[p.scanline*256+col] = Palette[out&0x3F]
}
