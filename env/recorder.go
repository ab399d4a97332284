package env

// Recorder is an in-process Environment fed from a byte slice. It records the
// terminal outcome of the invocation so embedding code (and tests) can
// inspect what crossed the boundary.
type Recorder struct {
	input   []byte
	readErr error

	// Output is the payload of the last Finish call, nil if none happened.
	Output []byte
	// Finishes counts Finish calls; a correct dispatch performs at most one.
	Finishes int
	// Reverted is set once Revert was called; Reason carries its diagnostic.
	Reverted bool
	Reason   string
}

// NewRecorder creates a Recorder serving the given raw input bytes.
func NewRecorder(input []byte) *Recorder {
	return &Recorder{input: input}
}

// FailReads makes every GetCallData return err, simulating a host that
// cannot supply input.
func (r *Recorder) FailReads(err error) {
	r.readErr = err
}

func (r *Recorder) GetCallData(mode CallMode) (*CallData, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	return SplitCallData(mode, r.input)
}

func (r *Recorder) Finish(ret []byte) {
	r.Finishes++
	r.Output = append([]byte(nil), ret...)
}

func (r *Recorder) Revert(msg string) {
	r.Reverted = true
	r.Reason = msg
}
