package timing

import "time"

const fpsSampleCount = 60

var (
	now = time.Now

	startTime      time.Time
	frameStartTime time.Time
	dt             float32

	frameTimes     [fpsSampleCount]float32
	frameTimeIndex int
	frameTimeCount int
)

func Init() {

	startTime = now()
	frameStartTime = startTime
	dt = 0.01

	frameTimes = [fpsSampleCount]float32{}
	frameTimeIndex = 0
	frameTimeCount = 0
}

func FrameStarted() {
	frameStartTime = now()
}

func FrameEnded() {

	dt = float32(now().Sub(frameStartTime).Seconds())

	frameTimes[frameTimeIndex] = dt
	frameTimeIndex = (frameTimeIndex + 1) % fpsSampleCount
	if frameTimeCount < fpsSampleCount {
		frameTimeCount++
	}
}

// DT is the duration of the last frame in seconds
func DT() float32 {
	return dt
}

// ElapsedTime is the number of seconds since Init
func ElapsedTime() float32 {
	return float32(now().Sub(startTime).Seconds())
}

// GetAvgFPS averages over the last few frames
func GetAvgFPS() float32 {

	if frameTimeCount == 0 {
		return 0
	}

	var total float32
	for i := 0; i < frameTimeCount; i++ {
		total += frameTimes[i]
	}

	if total == 0 {
		return 0
	}

	return float32(frameTimeCount) / total
}
