package ldpc

// CodeDefinition names one deployed code together with its full synthesis
// parameters.
type CodeDefinition struct {
	Name string
	CodeParams
}

// ReferenceCodes returns the three codes of the reference deployment: the
// rate-1/3 legacy (truncated-signature) authentication code, the rate-1/3
// full-signature authentication code, and the rate-2/3 voice code.
func ReferenceCodes() []CodeDefinition {
	return []CodeDefinition{
		{
			Name: "auth_legacy_768_256",
			CodeParams: CodeParams{
				N: 768, K: 256,
				ColWeights: []int{2, 3},
				RowWeights: []int{3, 4},
				Seed:       0x5F01,
			},
		},
		{
			Name: "auth_full_1536_512",
			CodeParams: CodeParams{
				N: 1536, K: 512,
				ColWeights: []int{2, 3},
				RowWeights: []int{3, 4},
				Seed:       0x5F02,
			},
		},
		{
			Name: "voice_576_384",
			CodeParams: CodeParams{
				N: 576, K: 384,
				ColWeights: []int{2, 3},
				RowWeights: []int{8, 9},
				Seed:       0x5F03,
			},
		},
	}
}
