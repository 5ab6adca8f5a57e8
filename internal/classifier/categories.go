package classifier

// Category is one harmonized disease grouping, stable across every era.
// Declaration order in Categories is the tie-break order: when two
// categories score the same keyword-hit count, the one declared first wins.
type Category struct {
	ID       string
	Name     string
	Keywords []string
}

// FallbackCategoryID receives every code whose description matches no
// keyword in any category.
const FallbackCategoryID = "other"

// Categories is the fixed harmonized category table. Keywords are matched
// as lowercase substrings against normalized descriptions.
var Categories = []Category{
	{
		ID:   "infectious_diseases",
		Name: "Infectious and Parasitic Diseases",
		Keywords: []string{
			"fever", "pox", "plague", "cholera", "typhus", "typhoid", "malaria",
			"diphtheria", "whooping", "scarlet", "measles", "influenza",
			"tuberculosis", "septic", "infection", "tetanus", "anthrax", "rabies",
			"syphilis", "gonorrhoea", "dysentery", "enteritis", "diarrhoea",
			"polio", "encephalitis", "meningitis", "leprosy", "mumps", "rubella",
			"pertussis", "streptococcal", "staphylococcal", "pneumococcal",
			"viral", "bacterial", "parasit", "helminth", "fungal",
			"infectious disease", "epidemic", "endemic", "varicella", "glanders",
			"other mycosis", "disease due to nematodes",
			"disease due to trematodes", "disease due to coccidia",
		},
	},
	{
		ID:   "neoplasms",
		Name: "Neoplasms (Cancers and Tumors)",
		Keywords: []string{
			"cancer", "carcinoma", "sarcoma", "tumor", "tumour", "neoplasm",
			"malignant", "benign", "lymphoma", "leukaemia", "leukemia",
			"melanoma", "adenoma", "adenocarcinoma", "glioma", "metasta",
		},
	},
	{
		ID:   "blood_immune",
		Name: "Blood and Immune System Disorders",
		Keywords: []string{
			"anaemia", "anemia", "haemophilia", "purpura", "thrombocytopeni",
			"agranulocytosis", "immunodeficiency", "immune disorder", "thymus",
			"diseases of the spleen", "disseminated sclerosis",
			"multiple sclerosis", "pemphigus",
		},
	},
	{
		ID:   "endocrine_metabolic",
		Name: "Endocrine, Nutritional and Metabolic Diseases",
		Keywords: []string{
			"diabetes", "thyroid", "goitre", "gout", "rickets", "scurvy",
			"beriberi", "pellagra", "marasmus", "kwashiorkor", "malnutrition",
			"obesity", "vitamin deficiency", "metabolic", "addison", "cushing",
			"acromegaly", "pituitary",
		},
	},
	{
		ID:   "mental_behavioral",
		Name: "Mental and Behavioral Disorders",
		Keywords: []string{
			"mental", "insanity", "mania", "melancholia", "psychosis",
			"neurosis", "dementia", "delirium", "schizophrenia", "depression",
			"anxiety", "intellectual disability", "idiocy", "imbecility",
		},
	},
	{
		ID:   "nervous_system",
		Name: "Diseases of the Nervous System",
		Keywords: []string{
			"nervous", "brain", "cerebral", "apoplexy", "paralysis",
			"hemiplegia", "epilepsy", "convulsion", "meningitis",
			"encephalitis", "parkinson", "multiple sclerosis", "neuralgia",
			"neuritis", "migraine", "headache", "beri-beri", "tetany",
			"tabes dorsalis", "locomotor ataxia", "chorea",
		},
	},
	{
		ID:   "eye_ear",
		Name: "Diseases of Eye and Ear",
		Keywords: []string{
			"eye", "vision", "blind", "cataract", "glaucoma", "ear", "deaf",
			"otitis", "mastoid sinus", "mastoiditis",
		},
	},
	{
		ID:   "circulatory",
		Name: "Diseases of the Circulatory System",
		Keywords: []string{
			"heart", "cardiac", "myocardi", "endocardi", "pericardi", "angina",
			"coronary", "artery", "arteriosclerosis", "atherosclerosis",
			"hypertension", "stroke", "cerebrovascular", "haemorrhage",
			"hemorrhage", "embolism", "thrombosis", "aneurysm", "varicose",
			"phlebitis", "gangrene", "vascular", "aortic valve disease",
			"mitral valve disease", "other diseases of the arteries",
			"other diseases of the circulatory system",
		},
	},
	{
		ID:   "respiratory",
		Name: "Diseases of the Respiratory System",
		Keywords: []string{
			"lung", "pulmonary", "bronch", "pneumonia", "asthma", "emphysema",
			"larynx", "laryngitis", "croup", "pharynx", "tonsil", "respiratory",
			"pleurisy", "pleural", "pneumothorax", "silicosis", "asbestosis",
			"diseases of the nose", "laryngismus stridulus", "empyema",
			"atelectasis",
		},
	},
	{
		ID:   "digestive",
		Name: "Diseases of the Digestive System",
		Keywords: []string{
			"stomach", "gastric", "gastritis", "ulcer", "intestin", "bowel",
			"colon", "rectum", "anus", "appendicitis", "peritonitis", "hernia",
			"liver", "hepat", "cirrhosis", "gallbladder", "cholecyst",
			"pancrea", "oesophag", "esophag", "digestive", "alimentary",
			"colitis", "ankylostomiasis", "biliary calculi",
		},
	},
	{
		ID:   "skin",
		Name: "Diseases of the Skin",
		Keywords: []string{
			"skin", "dermat", "eczema", "psoriasis", "abscess", "carbuncle",
			"cellulitis", "erysipelas", "myxoedema",
		},
	},
	{
		ID:   "musculoskeletal",
		Name: "Diseases of Musculoskeletal System and Connective Tissue",
		Keywords: []string{
			"arthritis", "rheumat", "osteo", "bone", "joint", "muscle",
			"muscular", "spine", "spinal", "scoliosis", "dorsopathy",
		},
	},
	{
		ID:   "genitourinary",
		Name: "Diseases of the Genitourinary System",
		Keywords: []string{
			"kidney", "renal", "nephri", "urinary", "bladder", "cystitis",
			"urethr", "prostate", "uterus", "ovary", "vagina", "menstrual",
			"genital", "soft chancre", "chancroid", "chyluria", "salpingitis",
		},
	},
	{
		ID:   "pregnancy_childbirth",
		Name: "Pregnancy, Childbirth and Puerperium",
		Keywords: []string{
			"pregnancy", "pregnant", "childbirth", "labour", "labor",
			"delivery", "puerperal", "placenta", "abortion", "miscarriage",
			"ectopic", "obstetric", "icterus neonatorum",
			"diseases of the umbilicus",
		},
	},
	{
		ID:   "perinatal",
		Name: "Conditions Originating in Perinatal Period",
		Keywords: []string{
			"newborn", "neonatal", "birth", "prematurity", "foetal", "fetal",
			"perinatal", "cretinism", "congenital hypothyroidism",
		},
	},
	{
		ID:   "congenital",
		Name: "Congenital Malformations and Chromosomal Abnormalities",
		Keywords: []string{
			"congenital", "malformation", "deformity", "chromosomal",
			"down syndrome", "spina bifida", "cleft",
		},
	},
	{
		ID:   "injury_poisoning",
		Name: "Injury, Poisoning and External Causes",
		Keywords: []string{
			"injury", "trauma", "wound", "fracture", "burn", "poison", "toxic",
			"drown", "suffocation", "fall", "crush", "motor vehicle",
			"railway", "fire", "vaccinia",
		},
	},
	{
		ID:   "suicide",
		Name: "Suicide and Self-Inflicted Injury",
		Keywords: []string{
			"suicide",
		},
	},
	{
		ID:   "accident",
		Name: "Accidental Death",
		Keywords: []string{
			"accident", "conflagration", "lightening", "electricity",
		},
	},
	{
		ID:   "homicide",
		Name: "Homicide and Assault",
		Keywords: []string{
			"homicide", "violence", "assault", "weapon",
		},
	},
	{
		ID:   "legal_drugs",
		Name: "Legal Drug-Related Deaths",
		Keywords: []string{
			"tobacco", "alcohol", "alcohol dependence syndrome", "alcoholism",
			"alcoholic psychoses",
		},
	},
	{
		ID:   "drugs",
		Name: "Drug-Related Deaths",
		Keywords: []string{
			"overdose", "drug dependence", "opium", "drug psychoses",
			"nondependent abuse of drugs",
		},
	},
	{
		ID:   "war",
		Name: "War and War-Related Deaths",
		Keywords: []string{
			"battle", "war ", "executions of civilians by belligerent armies",
		},
	},
	{
		ID:   "ill_defined",
		Name: "Symptoms, Signs and Ill-Defined Conditions",
		Keywords: []string{
			"symptom", "sign", "ill-defined", "unknown", "unspecified",
			"senility", "old age", "debility", "sudden death", "found dead",
		},
	},
	{
		ID:       FallbackCategoryID,
		Name:     "Other and Unclassified",
		Keywords: nil, // catch-all, never keyword-matched
	},
}

// CategoryByID returns the category with the given ID, or false.
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
