// Package commands holds the CLI subcommands of the urge binary.
package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bariskaantoprak-ui/ITSO/internal/auth"
)

var errMismatch = errors.New("passwords do not match")

// HashPassword handles the hash-password subcommand. It prompts for the admin
// password and prints an ADMIN_PASSWORD_HASH line for the .env file.
func HashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: urge hash-password\n\n")
		fmt.Fprintf(os.Stderr, "Prints an Argon2id hash of the admin password for ADMIN_PASSWORD_HASH.\n")
		fmt.Fprintf(os.Stderr, "When stdin is not a terminal the password is read from its first line.\n")
	}
	fs.Parse(args)

	var password, confirm string
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password = readHidden(fd, "Enter password:   ")
		confirm = readHidden(fd, "Confirm password: ")
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
		password = strings.TrimRight(line, "\r\n")
		confirm = password
	}

	if err := writeHash(os.Stdout, password, confirm); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readHidden(fd int, prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	return string(b)
}

// writeHash single-quotes the hash so godotenv does not expand its '$'.
func writeHash(w io.Writer, password, confirm string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != confirm {
		return errMismatch
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "ADMIN_PASSWORD_HASH='%s'\n", hash)
	return err
}
