// 14 Oct 2026

/*
Minfasta makes a small fasta file with only the proteins that DIA-NN
found, so tests and re-analysis do not have to search a whole proteome.

Usage:

	minfasta --protein-matrix diann/report.pg_matrix.tsv \
		--full-fasta uniprot_human.fasta.gz \
		--output test_data/fasta/minimal_proteome.fasta \
		--top 500

Protein groups are read from the matrix. Groups supported by fewer than
--min-peptides sequences (default 2) are dropped. The rest are ranked by
their mean intensity over the sample columns (names ending in .dia), and
with --top N only the N most abundant are kept. Groups like "P1;P2" are
split into their members.

The full fasta file is read once. A record is wanted if its identifier is
one of the selected proteins. For headers like
">sp|P12345|NAME_HUMAN ...", the identifier is P12345. Otherwise it is the
first word after the ">".

Records are written sorted by identifier with 60 residues per line. If the
output name ends in .gz, it is compressed. Inputs may be compressed too.

Column names, the sample suffix, the line width and the number of missing
identifiers to list can be changed with --config, which takes a .yaml or
.toml file like

	group_column: Protein.Group
	evidence_column: N.Sequences
	sample_suffix: .dia
	line_width: 60
	max_list_missing: 10

The exit status is zero on success. It is non-zero if an input is missing,
there are no sample columns, nothing is selected, or none of the selected
proteins are in the fasta file. In these cases no output file is written.
*/
package main
