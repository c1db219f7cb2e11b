package topology

import "fmt"

// Defect is raised (as a panic value) when the compiler meets a case the
// catalog checks should have made impossible.
type Defect struct {
	Profile string
	Reason  string
}

// Error implements the error interface.
func (d *Defect) Error() string {
	return fmt.Sprintf("compilation defect in profile %q: %s", d.Profile, d.Reason)
}

func defectf(profile, format string, args ...any) {
	panic(&Defect{Profile: profile, Reason: fmt.Sprintf(format, args...)})
}
