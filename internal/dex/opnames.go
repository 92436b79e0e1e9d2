package dex

var opcodeNames = map[Opcode]string{
	OpNop: "nop", OpMove: "move", OpMoveFrom16: "move/from16", OpMoveWide: "move-wide",
	OpMoveObject: "move-object", OpMoveResult: "move-result", OpMoveResultWide: "move-result-wide",
	OpMoveResultObject: "move-result-object", OpMoveException: "move-exception",
	OpReturnVoid: "return-void", OpReturn: "return", OpReturnWide: "return-wide", OpReturnObject: "return-object",
	OpConst4: "const/4", OpConst16: "const/16", OpConst: "const", OpConstHigh16: "const/high16",
	OpConstWide16: "const-wide/16", OpConstWide32: "const-wide/32", OpConstWide: "const-wide",
	OpConstWideHigh16: "const-wide/high16", OpConstString: "const-string", OpConstStringJumbo: "const-string/jumbo",
	OpConstClass: "const-class", OpMonitorEnter: "monitor-enter", OpMonitorExit: "monitor-exit",
	OpCheckCast: "check-cast", OpInstanceOf: "instance-of", OpArrayLength: "array-length",
	OpNewInstance: "new-instance", OpNewArray: "new-array", OpFilledNewArray: "filled-new-array",
	OpFilledNewArrayRng: "filled-new-array/range", OpFillArrayData: "fill-array-data", OpThrow: "throw",
	OpGoto: "goto", OpGoto16: "goto/16", OpGoto32: "goto/32", OpPackedSwitch: "packed-switch",
	OpSparseSwitch: "sparse-switch", OpCmplFloat: "cmpl-float", OpCmpgFloat: "cmpg-float",
	OpCmplDouble: "cmpl-double", OpCmpgDouble: "cmpg-double", OpCmpLong: "cmp-long",
	OpIfEq: "if-eq", OpIfNe: "if-ne", OpIfLt: "if-lt", OpIfGe: "if-ge", OpIfGt: "if-gt", OpIfLe: "if-le",
	OpIfEqz: "if-eqz", OpIfNez: "if-nez", OpIfLtz: "if-ltz", OpIfGez: "if-gez", OpIfGtz: "if-gtz", OpIfLez: "if-lez",
	OpAget: "aget", OpAgetWide: "aget-wide", OpAgetObject: "aget-object", OpAgetBoolean: "aget-boolean",
	OpAgetByte: "aget-byte", OpAgetChar: "aget-char", OpAgetShort: "aget-short",
	OpAput: "aput", OpAputWide: "aput-wide", OpAputObject: "aput-object", OpAputBoolean: "aput-boolean",
	OpAputByte: "aput-byte", OpAputChar: "aput-char", OpAputShort: "aput-short",
	OpIget: "iget", OpIgetWide: "iget-wide", OpIgetObject: "iget-object", OpIgetBoolean: "iget-boolean",
	OpIgetByte: "iget-byte", OpIgetChar: "iget-char", OpIgetShort: "iget-short",
	OpIput: "iput", OpIputWide: "iput-wide", OpIputObject: "iput-object", OpIputBoolean: "iput-boolean",
	OpIputByte: "iput-byte", OpIputChar: "iput-char", OpIputShort: "iput-short",
	OpSget: "sget", OpSgetWide: "sget-wide", OpSgetObject: "sget-object", OpSgetBoolean: "sget-boolean",
	OpSgetByte: "sget-byte", OpSgetChar: "sget-char", OpSgetShort: "sget-short",
	OpSput: "sput", OpSputWide: "sput-wide", OpSputObject: "sput-object", OpSputBoolean: "sput-boolean",
	OpSputByte: "sput-byte", OpSputChar: "sput-char", OpSputShort: "sput-short",
	OpInvokeVirtual: "invoke-virtual", OpInvokeSuper: "invoke-super", OpInvokeDirect: "invoke-direct",
	OpInvokeStatic: "invoke-static", OpInvokeInterface: "invoke-interface",
	OpInvokeVirtualRange: "invoke-virtual/range", OpInvokeSuperRange: "invoke-super/range",
	OpInvokeDirectRange: "invoke-direct/range", OpInvokeStaticRange: "invoke-static/range",
	OpInvokeInterfaceRange: "invoke-interface/range",
	OpNegInt: "neg-int", OpNotInt: "not-int", OpNegLong: "neg-long", OpNotLong: "not-long",
	OpNegFloat: "neg-float", OpNegDouble: "neg-double", OpIntToLong: "int-to-long", OpIntToFloat: "int-to-float",
	OpIntToDouble: "int-to-double", OpLongToInt: "long-to-int", OpLongToFloat: "long-to-float",
	OpLongToDouble: "long-to-double", OpFloatToInt: "float-to-int", OpFloatToLong: "float-to-long",
	OpFloatToDouble: "float-to-double", OpDoubleToInt: "double-to-int", OpDoubleToLong: "double-to-long",
	OpDoubleToFloat: "double-to-float", OpIntToByte: "int-to-byte", OpIntToChar: "int-to-char",
	OpIntToShort: "int-to-short",
}

var binOp23xNames = [32]string{
	"add-int", "sub-int", "mul-int", "div-int", "rem-int", "and-int", "or-int", "xor-int", "shl-int", "shr-int", "ushr-int",
	"add-long", "sub-long", "mul-long", "div-long", "rem-long", "and-long", "or-long", "xor-long", "shl-long", "shr-long", "ushr-long",
	"add-float", "sub-float", "mul-float", "div-float", "rem-float",
	"add-double", "sub-double", "mul-double", "div-double", "rem-double",
}

var lit16Names = [8]string{"add-int/lit16", "rsub-int", "mul-int/lit16", "div-int/lit16", "rem-int/lit16", "and-int/lit16", "or-int/lit16", "xor-int/lit16"}

var lit8Names = [11]string{"add-int/lit8", "rsub-int/lit8", "mul-int/lit8", "div-int/lit8", "rem-int/lit8", "and-int/lit8", "or-int/lit8", "xor-int/lit8", "shl-int/lit8", "shr-int/lit8", "ushr-int/lit8"}

func mnemonic(op Opcode) string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	switch {
	case op >= OpBinOp23xBase && op < OpBinOp23xBase+32:
		return binOp23xNames[op-OpBinOp23xBase]
	case op >= OpBinOp12xBase && op < OpBinOp12xBase+32:
		return binOp23xNames[op-OpBinOp12xBase] + "/2addr"
	case op >= OpBinOpLit16Base && op < OpBinOpLit16Base+8:
		return lit16Names[op-OpBinOpLit16Base]
	case op >= OpBinOpLit8Base && op < OpBinOpLit8Base+11:
		return lit8Names[op-OpBinOpLit8Base]
	default:
		return "unknown"
	}
}
