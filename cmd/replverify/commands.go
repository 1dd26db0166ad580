package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/couchbase/replverify/backbeat"
	"github.com/couchbase/replverify/objstore/objutil"
	"github.com/couchbase/replverify/objstore/objval"
	"github.com/couchbase/replverify/verify/poll"
	"github.com/couchbase/replverify/verify/scenario"
)

// keyPrefix is the prefix of generated object keys.
const keyPrefix = "replverify-"

// defaultBody is written by the commands which don't require a body to be provided.
var defaultBody = []byte("replverify")

// checkFlags are the flags shared by the commands which target an existing object.
type checkFlags struct {
	key          string
	version      string
	tags         bool
	acl          bool
	destinations []string
}

func (f *checkFlags) register(cmd *cobra.Command, withProperties bool) {
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "the key of the source object")
	cmd.Flags().StringVar(&f.version, "version", "", "the version of the source object, defaults to the latest")
	cmd.Flags().StringSliceVar(&f.destinations, "destination", nil, "only verify the named destinations")

	if withProperties {
		cmd.Flags().BoolVar(&f.tags, "tags", false, "compare object tags")
		cmd.Flags().BoolVar(&f.acl, "acl", false, "compare object ACLs")
	}

	_ = cmd.MarkFlagRequired("key")
}

func (f *checkFlags) check() scenario.Check {
	return scenario.Check{Key: f.key, VersionID: f.version, Tags: f.tags, ACL: f.acl}
}

func (a *app) checkCmd() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify an existing source object has been replicated to every destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, dests, err := a.runner(cmd.Context(), flags.destinations...)
			if err != nil {
				return err
			}

			if err := runner.Verify(cmd.Context(), flags.check(), dests...); err != nil {
				return err // Purposefully not wrapped
			}

			fmt.Fprintf(a.stdout, "Key '%s' replicated to %d destination(s)\n", flags.key, len(dests))

			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}

func (a *app) putCmd() *cobra.Command {
	var (
		key          string
		file         string
		attrs        objval.PutAttributes
		properties   = make(map[string]*string)
		metadata     map[string]string
		tags         map[string]string
		destinations []string
	)

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Write an object to the source then verify it's replicated to every destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read body: %w", err)
			}

			if key == "" {
				key = keyPrefix + uuid.NewString()
			}

			for name, value := range properties {
				if !cmd.Flags().Changed(name) {
					continue
				}

				switch name {
				case "content-type":
					attrs.ContentType = value
				case "cache-control":
					attrs.CacheControl = value
				case "content-disposition":
					attrs.ContentDisposition = value
				case "content-encoding":
					attrs.ContentEncoding = value
				case "content-language":
					attrs.ContentLanguage = value
				}
			}

			attrs.Metadata = metadata
			attrs.Tags = objval.TagSetFromMap(tags)

			runner, dests, err := a.runner(cmd.Context(), destinations...)
			if err != nil {
				return err
			}

			version, err := runner.ReplicateAndVerify(cmd.Context(), scenario.Object{
				Key:        key,
				Body:       body,
				Attributes: attrs,
			}, dests...)
			if err != nil {
				return err // Purposefully not wrapped
			}

			fmt.Fprintf(a.stdout, "Key '%s' (version '%s') replicated to %d destination(s)\n", key, version, len(dests))

			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "the key of the object, defaults to a generated key")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the file containing the object body")
	cmd.Flags().StringToStringVar(&metadata, "metadata", nil, "user metadata to attach to the object")
	cmd.Flags().StringToStringVar(&tags, "tag", nil, "tags to attach to the object")
	cmd.Flags().StringVar(&attrs.CannedACL, "acl", "", "canned ACL to apply to the object e.g. public-read")
	cmd.Flags().StringSliceVar(&destinations, "destination", nil, "only verify the named destinations")

	for _, name := range []string{
		"content-type",
		"cache-control",
		"content-disposition",
		"content-encoding",
		"content-language",
	} {
		properties[name] = cmd.Flags().String(name, "", "the "+name+" of the object")
	}

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a source object then verify the deletion is replicated to every destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, dests, err := a.runner(cmd.Context(), flags.destinations...)
			if err != nil {
				return err
			}

			if err := runner.VerifyDeletion(cmd.Context(), flags.check(), dests...); err != nil {
				return err // Purposefully not wrapped
			}

			fmt.Fprintf(a.stdout, "Deletion of key '%s' replicated to %d destination(s)\n", flags.key, len(dests))

			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}

func (a *app) pausedCheckCmd() *cobra.Command {
	var (
		key          string
		grace        time.Duration
		destinations []string
	)

	cmd := &cobra.Command{
		Use:   "paused-check",
		Short: "Write an object to the source then verify it's not replicated whilst replication is paused",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "" {
				key = keyPrefix + uuid.NewString()
			}

			runner, dests, err := a.runner(cmd.Context(), destinations...)
			if err != nil {
				return err
			}

			source := runner.Source()

			version, err := objutil.Upload(cmd.Context(), objutil.UploadOptions{
				Client: source.Client,
				Bucket: source.Bucket,
				Key:    key,
				Body:   defaultBody,
			})
			if err != nil {
				return fmt.Errorf("failed to write key '%s' to source '%s': %w", key, source.Name, err)
			}

			err = runner.VerifyNotReplicated(cmd.Context(), scenario.Check{Key: key, VersionID: version}, grace, dests...)
			if err != nil {
				return err // Purposefully not wrapped
			}

			fmt.Fprintf(a.stdout, "Key '%s' not replicated to %d destination(s) after %s\n", key, len(dests), grace)

			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "the key of the object, defaults to a generated key")
	cmd.Flags().DurationVar(&grace, "grace", 30*time.Second, "how long to wait before checking the destinations")
	cmd.Flags().StringSliceVar(&destinations, "destination", nil, "only verify the named destinations")

	return cmd
}

func (a *app) cleanupCmd() *cobra.Command {
	var (
		prefix       string
		destinations []string
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete every version of every object with the given prefix from the source and destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if prefix == "" {
				return errors.New("refusing to cleanup without a prefix")
			}

			runner, dests, err := a.runner(cmd.Context(), destinations...)
			if err != nil {
				return err
			}

			if err := runner.Cleanup(cmd.Context(), prefix, dests...); err != nil {
				return err // Purposefully not wrapped
			}

			fmt.Fprintf(a.stdout, "Removed prefix '%s' from the source and %d destination(s)\n", prefix, len(dests))

			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", keyPrefix, "the prefix of the objects to remove")
	cmd.Flags().StringSliceVar(&destinations, "destination", nil, "only cleanup the named destinations")

	return cmd
}

// replicationStatusGetter is implemented by clients which expose the status of the bucket replication rule.
type replicationStatusGetter interface {
	GetBucketReplicationStatus(ctx context.Context, bucket string) (string, error)
}

func (a *app) waitReplicationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wait-replication",
		Short: "Wait until replication is enabled on the source bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient(cmd.Context(), a.cfg.Source, a.logger)
			if err != nil {
				return fmt.Errorf("failed to create client for '%s': %w", a.cfg.Source.DisplayName(), err)
			}

			a.clients = append(a.clients, client)

			getter, ok := client.(replicationStatusGetter)
			if !ok {
				return fmt.Errorf("'%s' does not expose bucket replication status", client.Provider())
			}

			err = poll.WaitUntilReplicationEnabled(cmd.Context(), a.cfg.Source.Bucket,
				getter.GetBucketReplicationStatus, poll.Options{
					Name:   a.cfg.Source.DisplayName(),
					Delay:  a.cfg.Poll.Delay,
					Budget: a.cfg.Poll.Budget,
					Logger: a.logger,
				})
			if err != nil {
				return err // Purposefully not wrapped
			}

			fmt.Fprintf(a.stdout, "Replication enabled on bucket '%s'\n", a.cfg.Source.Bucket)

			return nil
		},
	}
}

// backbeat returns a client for the configured Backbeat endpoint.
func (a *app) backbeat() (*backbeat.Client, error) {
	algorithm, err := a.cfg.Backbeat.AlgorithmValue()
	if err != nil {
		return nil, err // Purposefully not wrapped
	}

	client, err := backbeat.NewClient(backbeat.Options{
		Endpoint:  a.cfg.Backbeat.Endpoint,
		Retries:   a.cfg.Backbeat.Retries,
		Algorithm: algorithm,
		Logger:    a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backbeat client: %w", err)
	}

	return client, nil
}

func (a *app) pauseCmd() *cobra.Command {
	return a.controlCmd(backbeat.OperationPause, "Pause replication to one or all locations",
		func(ctx context.Context, client *backbeat.Client, location string) error {
			return client.Pause(ctx, location)
		})
}

func (a *app) resumeCmd() *cobra.Command {
	return a.controlCmd(backbeat.OperationResume, "Resume replication to one or all locations",
		func(ctx context.Context, client *backbeat.Client, location string) error {
			return client.Resume(ctx, location)
		})
}

// controlCmd returns a command which runs the given replication control operation.
func (a *app) controlCmd(
	op backbeat.Operation,
	short string,
	fn func(ctx context.Context, client *backbeat.Client, location string) error,
) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   string(op),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.backbeat()
			if err != nil {
				return err
			}

			if err := fn(cmd.Context(), client, location); err != nil {
				return err // Purposefully not wrapped
			}

			target := location
			if target == "" {
				target = "all locations"
			}

			fmt.Fprintf(a.stdout, "Replication %sd for %s\n", op, target)

			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "the replication location, defaults to all locations")

	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Display the replication state of each location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.backbeat()
			if err != nil {
				return err
			}

			status, err := client.Status(cmd.Context())
			if err != nil {
				return err // Purposefully not wrapped
			}

			locations := make([]string, 0, len(status))
			for location := range status {
				locations = append(locations, location)
			}

			slices.Sort(locations)

			for _, location := range locations {
				fmt.Fprintf(a.stdout, "%s\t%s\n", location, status[location])
			}

			return nil
		},
	}
}
