package report

type Report struct {
	Run      *RunReport      `json:"run,omitempty"`
	Registry *RegistryReport `json:"registry,omitempty"`
}
