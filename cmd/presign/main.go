// Package main is the entry point for the presign CLI. It signs S3 URLs
// locally with credentials from the environment, without talking to any
// server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/internal/pkg/crypto"
	"github.com/prn-tf/alexander-presign/s3"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "get":
		err = runSign("get", args)
	case "put":
		err = runSign("put", args)
	case "delete":
		err = runSign("delete", args)
	case "list":
		err = runSign("list", args)
	case "keygen":
		err = runKeygen(args)

	case "version":
		fmt.Printf("Alexander Presign CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSign signs a URL for the given operation and prints it.
func runSign(op string, args []string) error {
	fs := flag.NewFlagSet(op, flag.ExitOnError)
	endpoint := fs.String("endpoint", "https://s3.amazonaws.com", "object store endpoint URL")
	region := fs.String("region", "us-east-1", "credential scope region")
	bucket := fs.String("bucket", "", "bucket name (required)")
	object := fs.String("object", "", "object key (required except for list)")
	expiry := fs.Duration("expiry", 15*time.Minute, "how long the URL stays valid")
	pathStyle := fs.Bool("path-style", false, "use path-style addressing")
	anonymous := fs.Bool("anonymous", false, "produce an unsigned URL for public buckets")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *bucket == "" {
		return fmt.Errorf("-bucket is required")
	}
	if *object == "" && op != "list" {
		return fmt.Errorf("-object is required")
	}

	style := s3.VirtualHostStyle
	if *pathStyle {
		style = s3.PathStyle
	}

	b, err := s3.NewBucket(*endpoint, style, *bucket, *region)
	if err != nil {
		return err
	}

	var creds *credentials.Credentials
	if !*anonymous {
		creds, err = credentials.FromEnv()
		if err != nil {
			return fmt.Errorf("%w (set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, or pass -anonymous)", err)
		}
		defer creds.Wipe()
	}

	var action s3.Action
	switch op {
	case "get":
		action = b.GetObject(creds, *object)
	case "put":
		action = b.PutObject(creds, *object)
	case "delete":
		action = b.DeleteObject(creds, *object)
	case "list":
		action = b.ListObjectsV2(creds)
	}

	fmt.Println(action.Sign(*expiry))
	return nil
}

// runKeygen generates key material for the presign server: an AWS-style
// access key pair, or the keystore master key.
func runKeygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	master := fs.Bool("master", false, "generate a keystore master key instead of an access key pair")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *master {
		key, err := crypto.GenerateMasterKey()
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	}

	accessKeyID, secretKey, err := crypto.GenerateAccessKeyPair()
	if err != nil {
		return err
	}
	fmt.Printf("Access Key ID: %s\n", accessKeyID)
	fmt.Printf("Secret Key:    %s\n", secretKey)
	return nil
}

func printUsage() {
	fmt.Println(`Alexander Presign CLI

Usage:
  presign <command> [arguments]

Commands:
  get         Presign a GET (download) URL
  put         Presign a PUT (upload) URL
  delete      Presign a DELETE URL
  list        Presign a ListObjectsV2 URL
  keygen      Generate an access key pair or a keystore master key
  version     Print version information
  help        Show this help message

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
optionally AWS_SESSION_TOKEN.

Examples:
  presign get -bucket my-bucket -object backups/db.tar.gz -expiry 1h
  presign put -endpoint http://localhost:9000 -path-style -bucket staging -object report.pdf
  presign list -bucket my-bucket
  presign keygen -master`)
}
