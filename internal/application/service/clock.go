package service

import "time"

// nowFunc is swapped out in tests to pin the clock.
var nowFunc = time.Now
