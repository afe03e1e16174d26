package corpuscmd

// FeatureGates exposes runtime feature toggles required by corpus command
// handlers. Callers should supply closures that read from the host
// configuration so handlers stay decoupled from it.
type FeatureGates struct {
	CorpusEnabled func() bool
}

func (g FeatureGates) corpusEnabled() bool {
	if g.CorpusEnabled == nil {
		return true
	}
	return g.CorpusEnabled()
}
