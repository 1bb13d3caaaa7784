// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the placeholder login used by the front desk screens.

	role, err := auth.Authenticate("juror", "juror")

Three fixed accounts exist (admin, juror, manager) and each password equals
its username. The returned Role only tells a client which screen to show.
No handler checks it and it provides no security.
*/
package auth
