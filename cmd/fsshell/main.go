// Command fsshell is an interactive shell over the flat filesystem
// implemented in package fat: an ishell.Shell with one ishell.Cmd per
// filesystem operation, and the mounted filesystem stashed in the
// shell's context values rather than a package-level global.
package main

import (
	"fmt"
	"os"

	"github.com/PapiCZ/ecs150fs/fat"
	"github.com/abiosoft/ishell"
	"github.com/fatih/color"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: fsshell <diskimage>")
		os.Exit(1)
	}

	shell := ishell.New()
	shell.SetPrompt("fs> ")
	shell.Set("volume_path", os.Args[1])
	shell.Set("fs", (*fat.Filesystem)(nil))
	shell.Set("shell", shell)

	if _, err := os.Stat(os.Args[1]); err == nil {
		fs, err := fat.Mount(os.Args[1])
		if err != nil {
			color.Red("failed to mount %s: %s", os.Args[1], err)
		} else {
			shell.Set("fs", fs)
			color.Green("mounted %s", os.Args[1])
		}
	}

	shell.AddCmd(&ishell.Cmd{Name: "format", Help: "format <path> <data-blocks>", Func: Format})
	shell.AddCmd(&ishell.Cmd{Name: "mount", Help: "mount <path>", Func: MountCmd})
	shell.AddCmd(&ishell.Cmd{Name: "umount", Help: "umount", Func: Umount})
	shell.AddCmd(&ishell.Cmd{Name: "info", Help: "info", Func: Info})
	shell.AddCmd(&ishell.Cmd{Name: "ls", Help: "ls", Func: Ls})
	shell.AddCmd(&ishell.Cmd{Name: "create", Help: "create <name>", Func: Create})
	shell.AddCmd(&ishell.Cmd{Name: "rm", Help: "rm <name>", Func: Rm})
	shell.AddCmd(&ishell.Cmd{Name: "open", Help: "open <name>", Func: Open})
	shell.AddCmd(&ishell.Cmd{Name: "close", Help: "close <fd>", Func: Close})
	shell.AddCmd(&ishell.Cmd{Name: "read", Help: "read <fd> <count>", Func: Read})
	shell.AddCmd(&ishell.Cmd{Name: "write", Help: "write <fd> <data>", Func: Write})
	shell.AddCmd(&ishell.Cmd{Name: "seek", Help: "seek <fd> <offset>", Func: Seek})
	shell.AddCmd(&ishell.Cmd{Name: "stat", Help: "stat <fd>", Func: Stat})
	shell.AddCmd(&ishell.Cmd{Name: "cat", Help: "cat <name>", Func: Cat})
	shell.AddCmd(&ishell.Cmd{Name: "load", Help: "load <script>", Func: Load})

	shell.Run()
}
