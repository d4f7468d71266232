package spvmsl

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestInputFormatForVertexFormat(t *testing.T) {
	tests := []struct {
		in   gputypes.VertexFormat
		want InputFormat
	}{
		{gputypes.VertexFormatUint8x2, InputFormatUInt8},
		{gputypes.VertexFormatSnorm8x4, InputFormatUInt8},
		{gputypes.VertexFormatUnorm16x2, InputFormatUInt16},
		{gputypes.VertexFormatSint16x4, InputFormatUInt16},
		{gputypes.VertexFormatFloat16x4, InputFormatAny16},
		{gputypes.VertexFormatFloat32x3, InputFormatAny32},
		{gputypes.VertexFormatSint32, InputFormatAny32},
		{gputypes.VertexFormatUnorm1010102, InputFormatOther},
		{gputypes.VertexFormatUndefined, InputFormatOther},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := InputFormatForVertexFormat(tt.in); got != tt.want {
				t.Errorf("InputFormatForVertexFormat(%d) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestSamplerAddressFromMode(t *testing.T) {
	tests := []struct {
		in   gputypes.AddressMode
		want SamplerAddress
	}{
		{gputypes.AddressModeRepeat, SamplerAddressRepeat},
		{gputypes.AddressModeMirrorRepeat, SamplerAddressMirroredRepeat},
		{gputypes.AddressModeClampToEdge, SamplerAddressClampToEdge},
		{gputypes.AddressModeUndefined, SamplerAddressClampToEdge},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := SamplerAddressFromMode(tt.in); got != tt.want {
				t.Errorf("SamplerAddressFromMode(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultConstExprSampler(t *testing.T) {
	s := DefaultConstExprSampler()
	if s.MinFilter != gputypes.FilterModeNearest || s.MagFilter != gputypes.FilterModeNearest {
		t.Errorf("filters = %v/%v, want nearest", s.MinFilter, s.MagFilter)
	}
	if s.CompareFunc != gputypes.CompareFunctionNever || s.CompareEnable {
		t.Errorf("compare = %v enabled=%v", s.CompareFunc, s.CompareEnable)
	}
	if s.LodClampMax != 1000 || s.MaxAnisotropy != 1 {
		t.Errorf("lod max %v anisotropy %d", s.LodClampMax, s.MaxAnisotropy)
	}

	other := s
	other.AddressW = SamplerAddressRepeat
	if s == other {
		t.Error("samplers with different address modes compare equal")
	}
}
