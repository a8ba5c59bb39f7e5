package playback

// PlayDone reports completion of an asynchronous play attempt. It re-enters
// the event loop via the send function given to the Coordinator; the shell
// forwards it to HandlePlayDone.
type PlayDone struct {
	ID  string
	Gen uint64
	Err error
}
