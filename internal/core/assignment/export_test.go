// Copyright (c) 2026 Dugout. All rights reserved.

package assignment

import "time"

// SetClock replaces the service clock in tests.
func (service *Service) SetClock(now func() time.Time) {
	service.now = now
}
