// Copyright 2025 ebisu-dx. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package secure-export retrieves password protected Excel workbooks from a Google Drive folder and re-publishes
the selected worksheets as CSV files.

secure-export can be used from the command line but is really intended to be run from a scheduled job (e.g. a
GitHub Actions workflow) to pick up the most recent workbook matching a file name prefix, decrypt it, convert
one or more worksheets to CSV and deliver the CSV files either directly to a destination Drive folder or via
an HTTP relay endpoint authenticated with a shared API key.

secure-export supports the following commands:

  - export, to locate, decrypt and convert the most recent matching workbook and deliver the CSV files
  - get, to decrypt and convert a single worksheet of the most recent matching workbook to a local CSV file
  - sheets, to list the worksheet names of the most recent matching workbook
  - version, to display the current version
*/
package secure
