package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"room-lab/repositories"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

const previewLength = 40

func main() {
	dbPath := flag.String("db", "data/badger", "Path to badger DB")
	prefix := flag.String("prefix", repositories.TextRoomPrefix, "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "Public", "Locked", "Updated", "Length", "Shape", "Preview"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	var total, legacy, broken int
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			roomID := strings.TrimPrefix(string(item.Key()), repositories.TextRoomPrefix)

			err := item.Value(func(v []byte) error {
				total++
				decoded, err := repositories.DecodeRoom(v, time.Time{})
				if err != nil {
					// keep scanning, one bad record must not hide the others
					broken++
					fmt.Println(color.Red.Sprintf("Error decoding room %s: %v", roomID, err))
					return nil
				}
				if decoded.Skipped {
					table.Append([]string{roomID, "-", "-", "-", "-", color.Gray.Sprint("skipped"), ""})
					return nil
				}

				shape := color.Green.Sprint("current")
				if decoded.Migrated {
					legacy++
					shape = color.Yellow.Sprint("legacy")
				}
				updated := "--"
				if !decoded.Data.UpdatedAt.IsZero() {
					updated = decoded.Data.UpdatedAt.Format(time.DateTime)
				}
				text := []rune(decoded.Data.Text)
				preview := string(text)
				if len(text) > previewLength {
					preview = string(text[:previewLength]) + "…"
				}

				table.Append([]string{
					roomID,
					strconv.FormatBool(decoded.Data.IsPublic),
					strconv.FormatBool(decoded.Data.Password != ""),
					updated,
					strconv.Itoa(len(text)),
					shape,
					strings.ReplaceAll(preview, "\n", " "),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	header := fmt.Sprintf(" %d rooms, %d legacy, %d undecodable ", total, legacy, broken)
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(header))
	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
