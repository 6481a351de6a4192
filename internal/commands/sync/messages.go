package sync

import "github.com/tildaslashalef/pokenest/internal/catalog"

type (
	// syncStartedMsg is sent once Sync has returned with the first page
	syncStartedMsg struct {
		result *catalog.Result
		err    error
	}

	// statusMsg carries a controller status update
	statusMsg catalog.Status

	// syncDoneMsg is sent when the run, background included, has ended
	syncDoneMsg struct {
		err error
	}
)
