// Package console wires the bus, CPU, PPU, APU, and cartridge into the
// single facade a host embeds: power-up, reset, step-one-frame,
// inject-controller-state, read-framebuffer, read-audio-sample, and
// save/load state.
package console

import (
	"fmt"
	"io"

	"nescore/internal/bus"
	"nescore/internal/cartridge"
	"nescore/internal/cpu"
	"nescore/internal/ppu"
)

// Console owns a Bus (which in turn uniquely owns CPU/PPU/APU/Cartridge)
// and is the only thread-safety boundary the host needs to respect: all
// Console methods must be called from a single goroutine.
type Console struct {
	bus    *bus.Bus
	cart   *cartridge.Cartridge
	log    Logger
	cfg    Config
	trace  io.Writer
}

// Option configures a Console at construction time.
type Option func(*Console)

// WithLogger installs a non-discarding logger.
func WithLogger(l Logger) Option { return func(c *Console) { c.log = l } }

// WithTraceWriter enables per-instruction trace logging to w: one line per
// retired instruction with the CPU state right after it executed (PC,
// opcode byte and mnemonic, registers, cycle count). The layout resembles
// nestest.log, which logs the state before each instruction and its
// operand bytes, so the two do not match line for line. Intended for
// headless hardware-accuracy comparison, not for interactive play.
func WithTraceWriter(w io.Writer) Option { return func(c *Console) { c.trace = w } }

// PowerUp constructs a cart from a ROM file, wires every component
// together, and runs a cold reset.
func PowerUp(romPath string, cfg Config, opts ...Option) (*Console, error) {
	cart, err := cartridge.Load(romPath)
	if err != nil {
		return nil, fmt.Errorf("console: power up: %w", err)
	}
	return powerUpFrom(cart, cfg, opts...), nil
}

// PowerUpReader is PowerUp for a ROM image already in memory or behind
// any io.Reader (e.g. an embedded test fixture).
func PowerUpReader(r io.Reader, cfg Config, opts ...Option) (*Console, error) {
	cart, err := cartridge.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("console: power up: %w", err)
	}
	return powerUpFrom(cart, cfg, opts...), nil
}

func powerUpFrom(cart *cartridge.Cartridge, cfg Config, opts ...Option) *Console {
	c := &Console{
		cart: cart,
		log:  discardLogger,
		cfg:  cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bus = bus.New(cart, c.cfg.Audio.SampleRate)
	c.bus.Reset()
	if c.cfg.Trace.Enabled && c.trace == nil {
		// A path-based trace request with no writer supplied by the host
		// is a caller error the host should catch at config time, not a
		// condition the core silently papers over.
		c.log.Printf("console: trace enabled in config but no WithTraceWriter supplied")
	}
	return c
}

// Reset re-runs the cold reset sequence on CPU/PPU/APU/mapper, leaving
// RAM and ROM contents intact.
func (c *Console) Reset() { c.bus.Reset() }

// SetControllerState latches the externally observed button byte for
// controller index (0 or 1); the core samples it only on the next
// $4016 strobe write.
func (c *Console) SetControllerState(index int, buttons uint8) {
	c.bus.SetControllerState(index, buttons)
}

// StepFrame ticks the bus until the PPU's frame-complete edge fires,
// then returns. Instruction traces, if enabled, are written as each CPU
// instruction retires.
func (c *Console) StepFrame() {
	for !c.bus.FrameDone() {
		before := c.bus.CPU().TotalCycles()
		c.bus.Tick()
		if c.trace != nil && c.bus.CPU().TotalCycles() != before {
			c.writeTrace()
		}
	}
}

func (c *Console) writeTrace() {
	s := c.bus.CPU().Snapshot()
	fmt.Fprintf(c.trace, "%04X  %02X %-28s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
		s.PC, s.Opcode, s.OpcodeName, s.A, s.X, s.Y, s.P, s.SP, s.Cycles)
}

// Framebuffer returns the most recently completed frame, 256x240 RGB
// pixels in row-major order.
func (c *Console) Framebuffer() []uint32 { return c.bus.PPU().FrameBuffer() }

// NextAudioSample returns the most recently mixed APU output sample.
func (c *Console) NextAudioSample() float32 { return c.bus.APU().NextSample() }

// DrainAudio returns every sample mixed since the last call, for a host
// streaming audio player running alongside StepFrame.
func (c *Console) DrainAudio() []float32 { return c.bus.APU().DrainSamples() }

// Debug snapshots, read-only, for the host's disassembly/inspector
// views. The core never mutates state to serve these.
func (c *Console) CPUState() cpu.State       { return c.bus.CPU().Snapshot() }
func (c *Console) PPUState() ppu.State       { return c.bus.PPU().Snapshot() }
func (c *Console) CartridgeState() cartridge.State { return c.cart.Snapshot() }
