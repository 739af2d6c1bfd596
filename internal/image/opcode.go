package image

// Kind tags the operand slots that make up an instruction's encoding. Each
// Kind has a fixed on-wire width; Shape.Width() sums them with the opcode
// byte itself to get an instruction's total length.
type Kind uint8

const (
	KindDataReg  Kind = iota // 1 byte: a DataReg id
	KindAddrReg              // 1 byte: an AddrReg id
	KindNum                  // 1 byte: an 8-bit literal
	KindAddr                 // 2 bytes big-endian: an absolute 16-bit literal / ops offset
	KindStringID             // 2 bytes big-endian: byte offset into the strings blob
	KindDataID               // 2 bytes big-endian: byte offset into the data blob
	KindHandle               // 2 bytes: tag(0=literal,1=register) + value; a file handle id or an LD outer/inner index
)

// Width reports the on-wire byte width of one operand of this Kind.
func (k Kind) Width() int {
	switch k {
	case KindDataReg, KindAddrReg, KindNum:
		return 1
	case KindAddr, KindStringID, KindDataID, KindHandle:
		return 2
	default:
		return 0
	}
}

// Opcode is the single byte that selects an instruction shape.
type Opcode uint8

// Shape describes one operand-shape variant of a mnemonic: the opcode byte
// that selects it and the ordered list of operand Kinds that follow it.
type Shape struct {
	Op       Opcode
	Mnemonic string
	Operands []Kind
}

// Width is the total instruction length in bytes, opcode included.
func (s Shape) Width() int {
	n := 1
	for _, k := range s.Operands {
		n += k.Width()
	}
	return n
}

// opcode byte assignment: a flat, densely-but-not-necessarily-contiguously
// numbered sequence. Order here has no semantic meaning; it only needs to be
// internally consistent across assembler/executor/decompiler, which all
// consult the tables built from this list.
const (
	opAddRegReg Opcode = iota + 1
	opAddRegVal
	opAddRegAReg
	opSubRegReg
	opSubRegVal
	opSubRegAReg
	opIncReg
	opIncAReg
	opDecReg
	opDecAReg

	opAndRegReg
	opAndRegVal
	opAndRegAReg
	opOrRegReg
	opOrRegVal
	opOrRegAReg
	opXorRegReg
	opXorRegVal
	opXorRegAReg
	opNotReg
	opNotAReg
	opNotVal

	opCpyDRegDReg
	opCpyDRegVal
	opCpyDRegAReg
	opCpyARegAddr
	opCpyARegAReg
	opCpyARegDHiDLo
	opCpyDHiDLoAReg
	opSwpDRegDReg
	opSwpARegAReg
	opMemrAddr
	opMemrAReg
	opMemwAddr
	opMemwAReg
	opMemcARegAReg
	opMempAReg
	opLdAReg
	opLenData

	opCmpRegReg
	opCmpRegVal
	opCmpRegAReg
	opCmparRegReg
	opCmparRegVal
	opCmparRegAReg

	opJmpAddr
	opJmpAReg
	opJeAddr
	opJeAReg
	opJneAddr
	opJneAReg
	opJgAddr
	opJgAReg
	opJlAddr
	opJlAReg
	opOverAddr
	opOverAReg
	opNoverAddr
	opNoverAReg
	opCallAddr
	opCallAReg
	opRet

	opPushReg
	opPushVal
	opPushAReg
	opPopReg
	opPopAReg
	opArgRegVal
	opArgARegVal

	opPrtReg
	opPrtVal
	opPrtcReg
	opPrtcVal
	opPrtsStr
	opPrtln
	opPrtdAReg
	opDebug

	opFopen
	opFiler
	opFilew
	opFilewByte
	opFskip
	opFseek
	opFchkAddr
	opFchkAReg

	opIpollAddr
	opIpollAReg
	opRchrReg
	opRstrAddr
	opRstrAReg

	opNop
	opHalt
	opRandReg
	opSeedReg
	opSeedVal
	opTime
)

// Shapes is the ordered table of every instruction shape, the single
// source of truth for the assembler (shape selection), the executor (operand
// decoding), and the decompiler (operand re-synthesis).
var Shapes = []Shape{
	{opAddRegReg, "add", []Kind{KindDataReg, KindDataReg}},
	{opAddRegVal, "add", []Kind{KindDataReg, KindNum}},
	{opAddRegAReg, "add", []Kind{KindDataReg, KindAddrReg}},
	{opSubRegReg, "sub", []Kind{KindDataReg, KindDataReg}},
	{opSubRegVal, "sub", []Kind{KindDataReg, KindNum}},
	{opSubRegAReg, "sub", []Kind{KindDataReg, KindAddrReg}},
	{opIncReg, "inc", []Kind{KindDataReg}},
	{opIncAReg, "inc", []Kind{KindAddrReg}},
	{opDecReg, "dec", []Kind{KindDataReg}},
	{opDecAReg, "dec", []Kind{KindAddrReg}},

	{opAndRegReg, "and", []Kind{KindDataReg, KindDataReg}},
	{opAndRegVal, "and", []Kind{KindDataReg, KindNum}},
	{opAndRegAReg, "and", []Kind{KindDataReg, KindAddrReg}},
	{opOrRegReg, "or", []Kind{KindDataReg, KindDataReg}},
	{opOrRegVal, "or", []Kind{KindDataReg, KindNum}},
	{opOrRegAReg, "or", []Kind{KindDataReg, KindAddrReg}},
	{opXorRegReg, "xor", []Kind{KindDataReg, KindDataReg}},
	{opXorRegVal, "xor", []Kind{KindDataReg, KindNum}},
	{opXorRegAReg, "xor", []Kind{KindDataReg, KindAddrReg}},
	{opNotReg, "not", []Kind{KindDataReg}},
	{opNotAReg, "not", []Kind{KindAddrReg}},
	{opNotVal, "not", []Kind{KindNum}},

	{opCpyDRegDReg, "cpy", []Kind{KindDataReg, KindDataReg}},
	{opCpyDRegVal, "cpy", []Kind{KindDataReg, KindNum}},
	{opCpyDRegAReg, "cpy", []Kind{KindDataReg, KindAddrReg}},
	{opCpyARegAddr, "cpy", []Kind{KindAddrReg, KindAddr}},
	{opCpyARegAReg, "cpy", []Kind{KindAddrReg, KindAddrReg}},
	{opCpyARegDHiDLo, "cpy", []Kind{KindAddrReg, KindDataReg, KindDataReg}},
	{opCpyDHiDLoAReg, "cpy", []Kind{KindDataReg, KindDataReg, KindAddrReg}},

	{opSwpDRegDReg, "swp", []Kind{KindDataReg, KindDataReg}},
	{opSwpARegAReg, "swp", []Kind{KindAddrReg, KindAddrReg}},

	{opMemrAddr, "memr", []Kind{KindAddr}},
	{opMemrAReg, "memr", []Kind{KindAddrReg}},
	{opMemwAddr, "memw", []Kind{KindAddr}},
	{opMemwAReg, "memw", []Kind{KindAddrReg}},
	{opMemcARegAReg, "memc", []Kind{KindAddrReg, KindAddrReg}},
	{opMempAReg, "memp", []Kind{KindAddrReg}},

	{opLdAReg, "ld", []Kind{KindAddrReg, KindDataID, KindHandle, KindHandle}},
	{opLenData, "len", []Kind{KindDataID, KindHandle}},

	{opCmpRegReg, "cmp", []Kind{KindDataReg, KindDataReg}},
	{opCmpRegVal, "cmp", []Kind{KindDataReg, KindNum}},
	{opCmpRegAReg, "cmp", []Kind{KindDataReg, KindAddrReg}},
	{opCmparRegReg, "cmpar", []Kind{KindDataReg, KindDataReg}},
	{opCmparRegVal, "cmpar", []Kind{KindDataReg, KindNum}},
	{opCmparRegAReg, "cmpar", []Kind{KindDataReg, KindAddrReg}},

	{opJmpAddr, "jmp", []Kind{KindAddr}},
	{opJmpAReg, "jmp", []Kind{KindAddrReg}},
	{opJeAddr, "je", []Kind{KindAddr}},
	{opJeAReg, "je", []Kind{KindAddrReg}},
	{opJneAddr, "jne", []Kind{KindAddr}},
	{opJneAReg, "jne", []Kind{KindAddrReg}},
	{opJgAddr, "jg", []Kind{KindAddr}},
	{opJgAReg, "jg", []Kind{KindAddrReg}},
	{opJlAddr, "jl", []Kind{KindAddr}},
	{opJlAReg, "jl", []Kind{KindAddrReg}},
	{opOverAddr, "over", []Kind{KindAddr}},
	{opOverAReg, "over", []Kind{KindAddrReg}},
	{opNoverAddr, "nover", []Kind{KindAddr}},
	{opNoverAReg, "nover", []Kind{KindAddrReg}},
	{opCallAddr, "call", []Kind{KindAddr}},
	{opCallAReg, "call", []Kind{KindAddrReg}},
	{opRet, "ret", nil},

	{opPushReg, "push", []Kind{KindDataReg}},
	{opPushVal, "push", []Kind{KindNum}},
	{opPushAReg, "push", []Kind{KindAddrReg}},
	{opPopReg, "pop", []Kind{KindDataReg}},
	{opPopAReg, "pop", []Kind{KindAddrReg}},
	{opArgRegVal, "arg", []Kind{KindDataReg, KindNum}},
	{opArgARegVal, "arg", []Kind{KindAddrReg, KindNum}},

	{opPrtReg, "prt", []Kind{KindDataReg}},
	{opPrtVal, "prt", []Kind{KindNum}},
	{opPrtcReg, "prtc", []Kind{KindDataReg}},
	{opPrtcVal, "prtc", []Kind{KindNum}},
	{opPrtsStr, "prts", []Kind{KindStringID}},
	{opPrtln, "prtln", nil},
	{opPrtdAReg, "prtd", []Kind{KindAddrReg}},
	{opDebug, "debug", nil},

	{opFopen, "fopen", []Kind{KindHandle}},
	{opFiler, "filer", []Kind{KindHandle, KindAddr}},
	{opFilew, "filew", []Kind{KindHandle, KindAddr}},
	{opFilewByte, "filewb", []Kind{KindHandle, KindHandle}},
	{opFskip, "fskip", []Kind{KindHandle, KindHandle}},
	{opFseek, "fseek", []Kind{KindHandle}},
	{opFchkAddr, "fchk", []Kind{KindHandle, KindAddr}},
	{opFchkAReg, "fchk", []Kind{KindHandle, KindAddrReg}},

	{opIpollAddr, "ipoll", []Kind{KindAddr}},
	{opIpollAReg, "ipoll", []Kind{KindAddrReg}},
	{opRchrReg, "rchr", []Kind{KindDataReg}},
	{opRstrAddr, "rstr", []Kind{KindAddr}},
	{opRstrAReg, "rstr", []Kind{KindAddrReg}},

	{opNop, "nop", nil},
	{opHalt, "halt", nil},
	{opRandReg, "rand", []Kind{KindDataReg}},
	{opSeedReg, "seed", []Kind{KindDataReg}},
	{opSeedVal, "seed", []Kind{KindNum}},
	{opTime, "time", nil},
}

// ByOpcode and ByMnemonic are built once at init from Shapes and are the
// tables every other package looks things up through.
var (
	ByOpcode   = map[Opcode]Shape{}
	ByMnemonic = map[string][]Shape{}
)

func init() {
	for _, s := range Shapes {
		if _, dup := ByOpcode[s.Op]; dup {
			panic("image: duplicate opcode byte in Shapes table")
		}
		ByOpcode[s.Op] = s
		ByMnemonic[s.Mnemonic] = append(ByMnemonic[s.Mnemonic], s)
	}
}

// Mnemonics lists every mnemonic the assembler accepts, used to validate
// that a `const` name never collides with one.
func Mnemonics() []string {
	out := make([]string, 0, len(ByMnemonic))
	for m := range ByMnemonic {
		out = append(out, m)
	}
	return out
}
