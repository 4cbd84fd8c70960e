package types

// HardwareAddress is the address of a memory mapped I/O
// register, living in 0xFF00 - 0xFF7F or at 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects which half of the keypad matrix is visible
	// and reports its (active-low) state.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte to be shifted out of, and the byte
	// shifted into, the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port. Bit 7 starts a transfer,
	// bit 0 selects the internal clock.
	SC HardwareAddress = 0xFF02
	// DIV is the upper byte of the 16-bit system divider.
	// Any write resets the whole divider.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC, and
	// reloaded from TMA on overflow.
	TIMA HardwareAddress = 0xFF05
	TMA  HardwareAddress = 0xFF06
	TAC  HardwareAddress = 0xFF07
	// IF holds the pending interrupt requests.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h)
	//  Bit 2: Timer Interrupt Request (INT 50h)
	//  Bit 3: Serial Interrupt Request (INT 58h)
	//  Bit 4: Joypad Interrupt Request (INT 60h)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	// NR52 is the sound master control. Bit 7 powers the
	// APU, bits 0-3 report which channels are running.
	NR52 HardwareAddress = 0xFF26
	// WaveRAM is the first of 16 bytes holding the 4-bit
	// samples of channel 3.
	WaveRAM HardwareAddress = 0xFF30

	LCDC HardwareAddress = 0xFF40
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY is the line currently being drawn, read only.
	LY  HardwareAddress = 0xFF44
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM transfer from (value << 8).
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B
	// KEY1 prepares a CPU speed switch (CGB only).
	KEY1 HardwareAddress = 0xFF4D
	// VBK selects the VRAM bank (CGB only).
	VBK HardwareAddress = 0xFF4F

	HDMA1 HardwareAddress = 0xFF51
	HDMA2 HardwareAddress = 0xFF52
	HDMA3 HardwareAddress = 0xFF53
	HDMA4 HardwareAddress = 0xFF54
	// HDMA5 starts, cancels and reports VRAM DMA transfers.
	HDMA5 HardwareAddress = 0xFF55

	BCPS HardwareAddress = 0xFF68
	BCPD HardwareAddress = 0xFF69
	OCPS HardwareAddress = 0xFF6A
	OCPD HardwareAddress = 0xFF6B
	OPRI HardwareAddress = 0xFF6C
	// SVBK selects the WRAM bank mapped at 0xD000 (CGB only).
	SVBK HardwareAddress = 0xFF70

	// FF72, FF73 and FF75 are plain storage on CGB hardware.
	FF72 HardwareAddress = 0xFF72
	FF73 HardwareAddress = 0xFF73
	FF75 HardwareAddress = 0xFF75
	// PCM12 and PCM34 expose the channel amplitudes on CGB.
	PCM12 HardwareAddress = 0xFF76
	PCM34 HardwareAddress = 0xFF77

	IE HardwareAddress = 0xFFFF
)
