package util

import "cpusim/internal/responses"

func CalculateAverage(details []responses.ProcessResponse) (averageWaitingTime, averageResponseTime, averageTurnAroundTime float64) {
	if len(details) == 0 {
		return
	}

	var waitingTimeSum, responseTimeSum, turnAroundTimeSum int
	for _, process := range details {
		waitingTimeSum += process.WaitingTime
		responseTimeSum += process.ResponseTime
		turnAroundTimeSum += process.TurnAroundTime
	}

	count := float64(len(details))

	averageWaitingTime = float64(waitingTimeSum) / count
	averageResponseTime = float64(responseTimeSum) / count
	averageTurnAroundTime = float64(turnAroundTimeSum) / count
	return
}
