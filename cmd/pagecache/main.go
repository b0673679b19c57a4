package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bietkhonhungvandi212/pagecache/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/pagecache/internal/storage/file"
	"github.com/bietkhonhungvandi212/pagecache/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pagecache/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "YAML options file")
	pages := flag.Int("pages", 8, "pages to write and read back")
	flag.Parse()

	if err := run(*configPath, *pages); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadOptions(path string) (util.Options, error) {
	if path == "" {
		return util.DefaultOptions(), nil
	}
	return util.LoadOptions(path)
}

// run writes pages through the pool, reads them back, then
// disposes one and prints the pool state.
func run(configPath string, pages int) (err error) {
	if pages < 0 {
		return fmt.Errorf("negative page count %d", pages)
	}
	opts, err := loadOptions(configPath)
	if err != nil {
		return err
	}
	log := opts.NewLogger()

	fm, err := file.NewFileManager(opts.Path, 1, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fm.Close(); err == nil {
			err = cerr
		}
	}()

	bp, err := buffer.NewBufferPool(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := bp.Close(); err == nil {
			err = cerr
		}
	}()
	log.Info("opened", "path", opts.Path, "frames", bp.Size(), "pageSize", bp.PageSize(), "pages", fm.NumPages())

	written := make([]util.PageID, 0, pages)
	for i := 0; i < pages; i++ {
		pageNo, p, err := bp.AllocatePage(fm)
		if err != nil {
			return err
		}
		copy(p.Data(), fmt.Sprintf("page %d", pageNo))
		if err := bp.UnpinPage(fm, pageNo, true); err != nil {
			return err
		}
		written = append(written, pageNo)
	}

	want, err := page.New(bp.PageSize())
	if err != nil {
		return err
	}
	for _, pageNo := range written {
		p, err := bp.PinPage(fm, pageNo)
		if err != nil {
			return err
		}
		want.Zero()
		copy(want.Data(), fmt.Sprintf("page %d", pageNo))
		if !p.Equal(want) {
			log.Error("content mismatch", "page", pageNo)
		}
		if err := bp.UnpinPage(fm, pageNo, false); err != nil {
			return err
		}
	}

	if len(written) > 0 {
		if err := bp.DisposePage(fm, written[0]); err != nil {
			return err
		}
	}
	if err := bp.Dump(os.Stdout); err != nil {
		return err
	}
	if err := bp.FlushFile(fm); err != nil {
		return err
	}

	stats := bp.Stats()
	fmt.Printf("accesses=%d hits=%d reads=%d writes=%d evictions=%d hitRate=%.2f\n",
		stats.Accesses, stats.Hits, stats.DiskReads, stats.DiskWrites, stats.Evictions, stats.HitRate())
	return nil
}
