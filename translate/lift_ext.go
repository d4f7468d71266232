package translate

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/spvmsl/spirv"
)

type extMath struct {
	fun ir.MathFunction
	// kind, when set, is the signedness the operands are read with.
	kind *ir.ScalarKind
}

var (
	kindSint = ir.ScalarSint
	kindUint = ir.ScalarUint
)

var glslMath = map[spirv.GLSLstd450]extMath{
	spirv.GLSLRound:           {fun: ir.MathRound},
	spirv.GLSLRoundEven:       {fun: ir.MathRound},
	spirv.GLSLTrunc:           {fun: ir.MathTrunc},
	spirv.GLSLFAbs:            {fun: ir.MathAbs},
	spirv.GLSLSAbs:            {ir.MathAbs, &kindSint},
	spirv.GLSLFSign:           {fun: ir.MathSign},
	spirv.GLSLSSign:           {ir.MathSign, &kindSint},
	spirv.GLSLFloor:           {fun: ir.MathFloor},
	spirv.GLSLCeil:            {fun: ir.MathCeil},
	spirv.GLSLFract:           {fun: ir.MathFract},
	spirv.GLSLRadians:         {fun: ir.MathRadians},
	spirv.GLSLDegrees:         {fun: ir.MathDegrees},
	spirv.GLSLSin:             {fun: ir.MathSin},
	spirv.GLSLCos:             {fun: ir.MathCos},
	spirv.GLSLTan:             {fun: ir.MathTan},
	spirv.GLSLAsin:            {fun: ir.MathAsin},
	spirv.GLSLAcos:            {fun: ir.MathAcos},
	spirv.GLSLAtan:            {fun: ir.MathAtan},
	spirv.GLSLSinh:            {fun: ir.MathSinh},
	spirv.GLSLCosh:            {fun: ir.MathCosh},
	spirv.GLSLTanh:            {fun: ir.MathTanh},
	spirv.GLSLAsinh:           {fun: ir.MathAsinh},
	spirv.GLSLAcosh:           {fun: ir.MathAcosh},
	spirv.GLSLAtanh:           {fun: ir.MathAtanh},
	spirv.GLSLAtan2:           {fun: ir.MathAtan2},
	spirv.GLSLPow:             {fun: ir.MathPow},
	spirv.GLSLExp:             {fun: ir.MathExp},
	spirv.GLSLLog:             {fun: ir.MathLog},
	spirv.GLSLExp2:            {fun: ir.MathExp2},
	spirv.GLSLLog2:            {fun: ir.MathLog2},
	spirv.GLSLSqrt:            {fun: ir.MathSqrt},
	spirv.GLSLInverseSqrt:     {fun: ir.MathInverseSqrt},
	spirv.GLSLDeterminant:     {fun: ir.MathDeterminant},
	spirv.GLSLMatrixInverse:   {fun: ir.MathInverse},
	spirv.GLSLFMin:            {fun: ir.MathMin},
	spirv.GLSLUMin:            {ir.MathMin, &kindUint},
	spirv.GLSLSMin:            {ir.MathMin, &kindSint},
	spirv.GLSLNMin:            {fun: ir.MathMin},
	spirv.GLSLFMax:            {fun: ir.MathMax},
	spirv.GLSLUMax:            {ir.MathMax, &kindUint},
	spirv.GLSLSMax:            {ir.MathMax, &kindSint},
	spirv.GLSLNMax:            {fun: ir.MathMax},
	spirv.GLSLFClamp:          {fun: ir.MathClamp},
	spirv.GLSLUClamp:          {ir.MathClamp, &kindUint},
	spirv.GLSLSClamp:          {ir.MathClamp, &kindSint},
	spirv.GLSLNClamp:          {fun: ir.MathClamp},
	spirv.GLSLFMix:            {fun: ir.MathMix},
	spirv.GLSLStep:            {fun: ir.MathStep},
	spirv.GLSLSmoothStep:      {fun: ir.MathSmoothStep},
	spirv.GLSLFma:             {fun: ir.MathFma},
	spirv.GLSLLdexp:           {fun: ir.MathLdexp},
	spirv.GLSLPackSnorm4x8:    {fun: ir.MathPack4x8snorm},
	spirv.GLSLPackUnorm4x8:    {fun: ir.MathPack4x8unorm},
	spirv.GLSLPackSnorm2x16:   {fun: ir.MathPack2x16snorm},
	spirv.GLSLPackUnorm2x16:   {fun: ir.MathPack2x16unorm},
	spirv.GLSLPackHalf2x16:    {fun: ir.MathPack2x16float},
	spirv.GLSLUnpackSnorm2x16: {ir.MathUnpack2x16snorm, &kindUint},
	spirv.GLSLUnpackUnorm2x16: {ir.MathUnpack2x16unorm, &kindUint},
	spirv.GLSLUnpackHalf2x16:  {ir.MathUnpack2x16float, &kindUint},
	spirv.GLSLUnpackSnorm4x8:  {ir.MathUnpack4x8snorm, &kindUint},
	spirv.GLSLUnpackUnorm4x8:  {ir.MathUnpack4x8unorm, &kindUint},
	spirv.GLSLLength:          {fun: ir.MathLength},
	spirv.GLSLDistance:        {fun: ir.MathDistance},
	spirv.GLSLCross:           {fun: ir.MathCross},
	spirv.GLSLNormalize:       {fun: ir.MathNormalize},
	spirv.GLSLFaceForward:     {fun: ir.MathFaceForward},
	spirv.GLSLReflect:         {fun: ir.MathReflect},
	spirv.GLSLRefract:         {fun: ir.MathRefract},
	spirv.GLSLFindILsb:        {fun: ir.MathFirstTrailingBit},
	spirv.GLSLFindSMsb:        {ir.MathFirstLeadingBit, &kindSint},
	spirv.GLSLFindUMsb:        {ir.MathFirstLeadingBit, &kindUint},
}

// extInst lifts a GLSL.std.450 extended instruction.
func (l *lifter) extInst(inst spirv.Instruction) error {
	ops := inst.Operands()
	if set := l.mod.ExtInstSets[ops[0]]; set != spirv.ExtInstSetGLSL450 {
		return unsupported("extended instruction set %q", set)
	}
	number := spirv.GLSLstd450(ops[1])
	m, ok := glslMath[number]
	if !ok {
		return unsupported("GLSL.std.450 instruction %d", number)
	}
	return l.math(inst, m.fun, ops[2:], m.kind)
}
