package controllers

// ProcessingErrorPrefix opens the detail of every failed chat.
const ProcessingErrorPrefix = "Error al procesar la solicitud"

// InternalProcessingError is the single failure kind of the chat gateway.
// Whatever went wrong underneath (network, remote agent, bad output) ends up here.
type InternalProcessingError struct {
	Err error
}

func (e *InternalProcessingError) Error() string {
	return ProcessingErrorPrefix + ": " + e.Err.Error()
}

func (e *InternalProcessingError) Unwrap() error {
	return e.Err
}
