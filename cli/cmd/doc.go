// Package cmd implements the dotenvy subcommands.
//
// Every command embeds [Source], which loads the dotenv inputs named on the
// command line into a [dotenv.Environment]. Output goes to the [Streams]
// stored in the command's context.
package cmd
