package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// hashPassword prompts for a password and prints its bcrypt hash for the
// basic_auth.password_hash config field. Input is not echoed on a terminal;
// piped input is read as a single line.
func hashPassword(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wallcal hash-password [-cost N]\n\n")
		fmt.Fprintf(os.Stderr, "Prints a bcrypt hash for basic_auth.password_hash.\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	var password string
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		first, err := promptHidden(fd, "Enter password:   ")
		if err != nil {
			return err
		}
		confirm, err := promptHidden(fd, "Confirm password: ")
		if err != nil {
			return err
		}
		if first != confirm {
			return errors.New("passwords do not match")
		}
		password = first
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		return errors.New("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Println(string(hash))
	return nil
}

func promptHidden(fd int, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
