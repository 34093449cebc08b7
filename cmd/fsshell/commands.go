package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PapiCZ/ecs150fs/fat"
	"github.com/abiosoft/ishell"
	"github.com/fatih/color"
)

func currentFS(c *ishell.Context) *fat.Filesystem {
	fs, _ := c.Get("fs").(*fat.Filesystem)
	return fs
}

func fail(c *ishell.Context, err error) {
	color.Red("error: %s", err)
}

func Format(c *ishell.Context) {
	if len(c.Args) != 2 {
		c.Println("expected 2 arguments: <path> <data-blocks>")
		return
	}

	dataBlocks, err := strconv.Atoi(c.Args[1])
	if err != nil {
		fail(c, err)
		return
	}

	if err := fat.Format(c.Args[0], dataBlocks); err != nil {
		fail(c, err)
		return
	}

	color.Green("formatted %s with %d data blocks", c.Args[0], dataBlocks)
}

func MountCmd(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument: <path>")
		return
	}

	fs, err := fat.Mount(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}

	c.Set("fs", fs)
	c.Set("volume_path", c.Args[0])
	color.Green("mounted %s", c.Args[0])
}

func Umount(c *ishell.Context) {
	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	if err := fs.Unmount(); err != nil {
		fail(c, err)
		return
	}

	c.Set("fs", (*fat.Filesystem)(nil))
	color.Green("unmounted")
}

func Info(c *ishell.Context) {
	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	var buf bytes.Buffer
	if err := fs.Info(&buf); err != nil {
		fail(c, err)
		return
	}
	c.Print(buf.String())
}

func Ls(c *ishell.Context) {
	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	entries, err := fs.List()
	if err != nil {
		fail(c, err)
		return
	}

	c.Println("FS Ls:")
	for _, e := range entries {
		blk := fmt.Sprintf("%d", e.FirstDataBlk)
		if e.FirstDataBlk == fat.FatEOC {
			blk = "FAT_EOC"
		}
		c.Printf("file: %s, size: %d, data_blk: %s\n", e.Name, e.Size, blk)
	}
}

func Create(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument: <name>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	if err := fs.Create(c.Args[0]); err != nil {
		fail(c, err)
		return
	}
	color.Green("created %s", c.Args[0])
}

func Rm(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument: <name>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	if err := fs.Delete(c.Args[0]); err != nil {
		fail(c, err)
		return
	}
	color.Green("removed %s", c.Args[0])
}

func Open(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument: <name>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	fd, err := fs.Open(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}
	c.Printf("fd=%d\n", fd)
}

func Close(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument: <fd>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	fd, err := strconv.Atoi(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}

	if err := fs.Close(fd); err != nil {
		fail(c, err)
		return
	}
	color.Green("closed fd %d", fd)
}

func Read(c *ishell.Context) {
	if len(c.Args) != 2 {
		c.Println("expected 2 arguments: <fd> <count>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	fd, err := strconv.Atoi(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}
	count, err := strconv.Atoi(c.Args[1])
	if err != nil {
		fail(c, err)
		return
	}

	buf := make([]byte, count)
	n, err := fs.Read(fd, buf)
	if err != nil {
		fail(c, err)
		return
	}
	c.Printf("%s\n", buf[:n])
}

func Write(c *ishell.Context) {
	if len(c.Args) < 2 {
		c.Println("expected at least 2 arguments: <fd> <data...>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	fd, err := strconv.Atoi(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}

	data := strings.Join(c.Args[1:], " ")
	n, err := fs.Write(fd, []byte(data))
	if err != nil {
		fail(c, err)
		return
	}
	c.Printf("wrote %d bytes\n", n)
}

func Seek(c *ishell.Context) {
	if len(c.Args) != 2 {
		c.Println("expected 2 arguments: <fd> <offset>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	fd, err := strconv.Atoi(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}
	offset, err := strconv.ParseUint(c.Args[1], 10, 32)
	if err != nil {
		fail(c, err)
		return
	}

	if err := fs.Lseek(fd, uint32(offset)); err != nil {
		fail(c, err)
	}
}

func Stat(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument: <fd>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	fd, err := strconv.Atoi(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}

	size, err := fs.Stat(fd)
	if err != nil {
		fail(c, err)
		return
	}
	c.Printf("%d\n", size)
}

func Cat(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument: <name>")
		return
	}

	fs := currentFS(c)
	if fs == nil {
		fail(c, fat.NotMountedError{})
		return
	}

	fd, err := fs.Open(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}
	defer func() { _ = fs.Close(fd) }()

	buf := make([]byte, 4096)
	for {
		n, err := fs.Read(fd, buf)
		if err != nil {
			fail(c, err)
			return
		}
		if n == 0 {
			break
		}
		c.Printf("%s", buf[:n])
	}
}

func Load(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument: <script>")
		return
	}

	shell := c.Get("shell").(*ishell.Shell)

	data, err := os.ReadFile(c.Args[0])
	if err != nil {
		fail(c, err)
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		c.Println(line)
		if err := shell.Process(strings.Fields(line)...); err != nil {
			fail(c, err)
			return
		}
	}
}
