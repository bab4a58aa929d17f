package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintCommand(t *testing.T) {
	args, err := printCommand("linux", "", "/tmp/cheque.pdf")
	assert.NoError(t, err)
	assert.Equal(t, []string{"lp", "/tmp/cheque.pdf"}, args)

	args, err = printCommand("linux", "HP_LaserJet", "/tmp/cheque.pdf")
	assert.NoError(t, err)
	assert.Equal(t, []string{"lp", "-d", "HP_LaserJet", "/tmp/cheque.pdf"}, args)

	args, err = printCommand("darwin", "", "/tmp/cheque.pdf")
	assert.NoError(t, err)
	assert.Equal(t, "lp", args[0])

	args, err = printCommand("windows", "", `C:\cheque.pdf`)
	assert.NoError(t, err)
	assert.Equal(t, "powershell", args[0])
	assert.Contains(t, args[3], "-Verb Print")

	_, err = printCommand("plan9", "", "/tmp/cheque.pdf")
	assert.Error(t, err)
}

func TestOpenCommand(t *testing.T) {
	args, err := openCommand("linux", "/tmp/cheque.pdf")
	assert.NoError(t, err)
	assert.Equal(t, []string{"xdg-open", "/tmp/cheque.pdf"}, args)

	args, err = openCommand("darwin", "/tmp/cheque.pdf")
	assert.NoError(t, err)
	assert.Equal(t, "open", args[0])

	args, err = openCommand("windows", `C:\cheque.pdf`)
	assert.NoError(t, err)
	assert.Equal(t, "cmd", args[0])

	_, err = openCommand("plan9", "/tmp/cheque.pdf")
	assert.Error(t, err)
}
