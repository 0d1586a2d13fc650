package output

import (
	"fmt"
	"io"
)

// Menu choices, in display order.
const (
	ChoiceView     = "1"
	ChoiceAdd      = "2"
	ChoiceComplete = "3"
	ChoiceRemove   = "4"
	ChoiceExit     = "5"
)

const menuText = `
==================================
          Task Manager
==================================
1. View Tasks
2. Add New Task
3. Mark Task as Completed
4. Remove Task
5. Exit
----------------------------------
Enter your choice: `

// FormatMenu writes the main menu and choice prompt.
func FormatMenu(w io.Writer) {
	fmt.Fprint(w, menuText)
}
