// Package input classifies platform input into the small set of pointer
// events the trackball understands.
//
// Every raw event maps to exactly one [Event]; anything the trackball does not
// care about becomes [Ignored]:
//
//   - [Classify]: platform-neutral window events ([RawEvent])
//   - [ClassifyTea]: Bubble Tea messages (terminal host)
//   - [Sampler]: turns polled pointer state (raylib, Ebitengine) into
//     [RawEvent] values frame by frame
//
// Close requests and the escape key are classified but never acted on here;
// the host decides whether to stop its loop (see [Event.Quits]).
package input
