package mapper

import "testing"

func newTestMedia(prgBanks, chrBanks int, chrIsRAM bool) Media {
	prg := make([]uint8, prgBanks*16384)
	for i := range prg {
		prg[i] = uint8(i)
	}
	var chr []uint8
	if chrIsRAM {
		chr = make([]uint8, 8192)
	} else {
		chr = make([]uint8, chrBanks*8192)
		for i := range chr {
			chr[i] = uint8(i)
		}
	}
	return Media{PRG: prg, CHR: chr, CHRIsRAM: chrIsRAM, PRGRAM: make([]uint8, 8192)}
}

func TestNROMMirrorsA16KBImageAcrossTheWindow(t *testing.T) {
	m := newNROM(newTestMedia(1, 1, false), MirrorVertical)
	lo := m.CPURead(0x8000)
	hi := m.CPURead(0xC000)
	if lo.Kind != Hit || hi.Kind != Hit || lo.Offset != hi.Offset {
		t.Fatalf("expected $8000 and $C000 to mirror the same 16KiB bank, got %+v / %+v", lo, hi)
	}
}

func TestNROMPRGRAMReadWrite(t *testing.T) {
	m := newNROM(newTestMedia(1, 1, false), MirrorHorizontal)
	if r := m.CPUWrite(0x6000, 0x42); r.Kind != Consumed {
		t.Fatalf("PRG-RAM write should be Consumed, got %v", r.Kind)
	}
	r := m.CPURead(0x6000)
	if r.Kind != HitInternal || r.Value != 0x42 {
		t.Fatalf("PRG-RAM readback = %+v, want HitInternal/0x42", r)
	}
}

func TestNROMCHRRAMIsWritable(t *testing.T) {
	media := newTestMedia(1, 1, true)
	m := newNROM(media, MirrorHorizontal)
	m.PPUWrite(0x0010, 0x55)
	if media.CHR[0x0010] != 0x55 {
		t.Fatalf("CHR-RAM write did not land in backing storage")
	}
}

func TestUxROMSwitchesPRGBank(t *testing.T) {
	m := newUxROM(newTestMedia(4, 1, true), MirrorVertical)
	m.CPUWrite(0x8000, 2) // select bank 2 for the switchable $8000 window
	r := m.CPURead(0x8000)
	if r.Kind != Hit || r.Offset != 2*16384 {
		t.Fatalf("switchable bank offset = %d, want %d", r.Offset, 2*16384)
	}
	// The last bank stays fixed at $C000 regardless of the select register.
	fixed := m.CPURead(0xC000)
	if fixed.Kind != Hit || fixed.Offset != 3*16384 {
		t.Fatalf("fixed bank offset = %d, want %d", fixed.Offset, 3*16384)
	}
}

func TestCNROMSwitchesCHRBank(t *testing.T) {
	m := newCNROM(newTestMedia(1, 4, false), MirrorHorizontal)
	m.CPUWrite(0x8000, 3)
	r := m.PPURead(0x0000)
	if r.Kind != Hit || r.Offset != 3*8192 {
		t.Fatalf("CHR bank offset = %d, want %d", r.Offset, 3*8192)
	}
}

func TestGxROMSwitchesBothPRGAndCHR(t *testing.T) {
	// 8 x 16KiB PRG = four 32KiB GxROM banks, so PRG bank 2 does not wrap.
	m := newGxROM(newTestMedia(8, 4, false), MirrorHorizontal)
	m.CPUWrite(0x8000, (2<<4)|1) // CHR bank 1, PRG bank 2 (bit layout per mapper 66)
	prg := m.CPURead(0x8000)
	chr := m.PPURead(0x0000)
	if prg.Kind != Hit || chr.Kind != Hit {
		t.Fatalf("expected both reads to hit, got prg=%+v chr=%+v", prg, chr)
	}
	if prg.Offset != 2*32768 {
		t.Fatalf("PRG bank offset = %d, want %d", prg.Offset, 2*32768)
	}
	if chr.Offset != 1*8192 {
		t.Fatalf("CHR bank offset = %d, want %d", chr.Offset, 1*8192)
	}
}

func TestMapperNewUnknownID(t *testing.T) {
	if _, ok := New(255, newTestMedia(1, 1, false), MirrorHorizontal); ok {
		t.Fatalf("expected ok=false for an unimplemented mapper id")
	}
}

func TestMapperResetPreservesROMButClearsBankSelect(t *testing.T) {
	media := newTestMedia(4, 1, true)
	prgBefore := append([]uint8(nil), media.PRG...)
	m, ok := New(2, media, MirrorVertical)
	if !ok {
		t.Fatal("mapper 2 (UxROM) should be implemented")
	}
	m.CPUWrite(0x8000, 3)
	m.Reset()
	r := m.CPURead(0x8000)
	if r.Offset != 0 {
		t.Fatalf("bank select offset after reset = %d, want 0", r.Offset)
	}
	for i, v := range prgBefore {
		if media.PRG[i] != v {
			t.Fatalf("PRG byte %d changed by Reset: %d, want %d", i, media.PRG[i], v)
		}
	}
}
