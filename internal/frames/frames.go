// Package frames models captured imager frames and the bounded queues that
// stage them for calibration. Queues are single-consumer and polling never
// blocks: a calibration pass only ever sees the frames already enqueued when
// it starts.
package frames

import (
	"sync"

	"github.com/google/uuid"

	"github.com/parallax-data/stereocal/internal/monitoring"
)

// Intrinsics describes the pinhole projection model of a video stream.
type Intrinsics struct {
	Width  int     // horizontal resolution (pixels)
	Height int     // vertical resolution (pixels)
	PPX    float64 // principal point x (pixels)
	PPY    float64 // principal point y (pixels)
	Fx     float64 // horizontal focal length (pixels)
	Fy     float64 // vertical focal length (pixels)
}

// StreamProfile exposes the stream geometry a frame was captured with.
type StreamProfile interface {
	Intrinsics() Intrinsics
}

// Frame is one captured image from an imager. Release must be called once
// the frame has been measured; implementations free the pixel buffer so at
// most one frame's data is live while a queue is drained.
type Frame interface {
	// HasData reports whether the frame carries pixel data. Frames can
	// arrive empty (dropped transfers, metadata-only frames) and are
	// skipped by consumers.
	HasData() bool
	Profile() StreamProfile
	Release()
}

// Queue is a single-consumer staging queue of captured frames.
type Queue interface {
	// Size returns the number of frames currently enqueued.
	Size() int
	// Poll removes and returns the oldest frame without blocking. The
	// second return is false when the queue is empty.
	Poll() (Frame, bool)
}

// VideoProfile is the concrete StreamProfile carried by in-memory frames.
type VideoProfile struct {
	Intr Intrinsics
}

// Intrinsics returns the profile's projection model.
func (p VideoProfile) Intrinsics() Intrinsics { return p.Intr }

// ImageFrame is an in-memory Frame with an owned pixel buffer.
type ImageFrame struct {
	id      string
	data    []byte
	profile VideoProfile
}

// NewImageFrame creates a frame owning data, tagged with a fresh frame ID.
func NewImageFrame(data []byte, intr Intrinsics) *ImageFrame {
	return &ImageFrame{
		id:      uuid.NewString(),
		data:    data,
		profile: VideoProfile{Intr: intr},
	}
}

// ID returns the frame's unique identifier.
func (f *ImageFrame) ID() string { return f.id }

// HasData reports whether the frame still holds pixel data.
func (f *ImageFrame) HasData() bool { return len(f.data) > 0 }

// Data returns the frame's pixel buffer, nil after Release.
func (f *ImageFrame) Data() []byte { return f.data }

// Profile returns the stream profile the frame was captured with.
func (f *ImageFrame) Profile() StreamProfile { return f.profile }

// Release drops the pixel buffer. Safe to call more than once.
func (f *ImageFrame) Release() { f.data = nil }

// MemoryQueue is a bounded in-memory Queue. When full, Enqueue drops the
// oldest frame so the queue always holds the most recent captures.
type MemoryQueue struct {
	mu       sync.Mutex
	frames   []Frame
	capacity int
}

// NewMemoryQueue creates a queue holding at most capacity frames. A
// capacity below 1 is treated as 1.
func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryQueue{capacity: capacity}
}

// Enqueue appends a frame, evicting and releasing the oldest when full.
func (q *MemoryQueue) Enqueue(f Frame) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.frames) >= q.capacity {
		oldest := q.frames[0]
		q.frames = q.frames[1:]
		oldest.Release()
		monitoring.Logf("frame queue full (capacity %d), dropped oldest frame", q.capacity)
	}
	q.frames = append(q.frames, f)
}

// Size returns the number of frames currently enqueued.
func (q *MemoryQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// Poll removes and returns the oldest frame, or (nil, false) when empty.
func (q *MemoryQueue) Poll() (Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.frames) == 0 {
		return nil, false
	}
	f := q.frames[0]
	q.frames = q.frames[1:]
	return f, true
}
